/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"errors"
	"fmt"

	"github.com/untillpro/goutils/logger"

	"github.com/specml/specml/pkg/parser"
)

// Compile parses every spec file under dir and runs the full pipeline:
// parse -> import resolution -> composition -> constraint validation.
//
// Error policy: lex/parse errors are collected across files and abort the
// run before composition; import graph errors are fatal; composition and
// validation errors are collected exhaustively and joined, with a partial
// Result returned alongside them.
func Compile(fsys parser.IReadFS, dir string) (*Result, error) {
	files, err := parser.ParseFS(fsys, dir)
	if err != nil {
		return nil, err
	}
	return CompileFiles(files)
}

// CompileFiles runs the pipeline on already-parsed files. All state is
// scoped to this call; concurrent compilations do not interfere.
func CompileFiles(files []*parser.FileSpecAST) (*Result, error) {
	c := newBasicContext(files)

	ordered, err := resolveImports(c)
	if err != nil {
		return nil, err
	}
	c.files = ordered
	if logger.IsVerbose() {
		for _, f := range ordered {
			logger.Verbose(fmt.Sprintf("load order: %s", f.Path))
		}
	}

	compose(c)
	validate(c)

	res := &Result{
		Files:     c.files,
		Entities:  c.entities,
		Endpoints: c.endpoints,
		Warnings:  c.warnings,
	}
	if len(c.errs) > 0 {
		return res, errors.Join(c.errs...)
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("compiled %d entities, %d endpoints", len(res.Entities), len(res.Endpoints)))
	}
	return res, nil
}
