/*
* Copyright (c) 2024-present SpecML project contributors
 */

package main

import (
	"fmt"
	fs "io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const rootConfigFile = "specml.yaml"

// applyRootConfig merges the optional specml.yaml at the compilation root
// into params. Flags set on the command line win.
func applyRootConfig(params compileParams, root string) compileParams {
	bytes, err := os.ReadFile(filepath.Join(root, rootConfigFile))
	if err != nil {
		return params
	}
	var cfg rootConfig
	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: ignored: %v\n", rootConfigFile, err)
		return params
	}
	if params.Output == "" {
		params.Output = cfg.Output
	}
	if params.Format == "" {
		params.Format = cfg.Format
	}
	return params
}

// pathReader adapts a directory to the read-only FS the compiler consumes.
type pathReader struct {
	root string
}

func (r pathReader) Open(name string) (fs.File, error) {
	return os.DirFS(r.root).Open(name)
}

func (r pathReader) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(filepath.Join(r.root, name))
}

func (r pathReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.root, name))
}
