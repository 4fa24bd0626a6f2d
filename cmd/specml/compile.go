/*
* Copyright (c) 2024-present SpecML project contributors
 */

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/specml/specml/pkg/compiler"
	"github.com/specml/specml/pkg/ir"
)

func newCompileCmd() *cobra.Command {
	params := compileParams{}
	cmd := &cobra.Command{
		Use:   "compile <root-dir>",
		Short: "compile a spec file tree into the intermediate representation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.RootDir = args[0]
			return compile(params)
		},
	}
	cmd.SilenceErrors = true
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "Write IR to this file instead of stdout")
	cmd.Flags().StringVar(&params.Format, "format", "", "IR format: json or yaml (default json)")
	return cmd
}

func compile(params compileParams) error {
	root, err := filepath.Abs(params.RootDir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("failed to open %s", params.RootDir)
	}
	params = applyRootConfig(params, root)

	res, err := compiler.Compile(pathReader{root}, ".")
	if res != nil {
		for _, w := range res.Warnings {
			fmt.Fprintln(os.Stderr, w.String())
		}
	}
	if err != nil {
		errs := splitErrors(err)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}

	doc := ir.Build(res)
	out, closeOut, err := outputWriter(params.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	switch params.Format {
	case "", "json":
		err = doc.EncodeJSON(out)
	case "yaml":
		err = doc.EncodeYAML(out)
	default:
		return fmt.Errorf("unknown format %q, expected json or yaml", params.Format)
	}
	if err != nil {
		return err
	}
	if logger.IsVerbose() && params.Output != "" {
		logger.Verbose(fmt.Sprintf("IR written to %s", params.Output))
	}
	return nil
}

func outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// splitErrors unpacks an errors.Join result into its parts.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
