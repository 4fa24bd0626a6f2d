/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/specml/specml/pkg/parser"
)

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// resolveImports resolves every raw import path to a file identity, builds
// the import edge set, rejects cycles and computes a topological order:
// every file is ordered after all files it imports, ties keep discovery
// order. Import graph errors are fatal to the whole run.
func resolveImports(c *basicContext) ([]*parser.FileSpecAST, error) {
	byPath := make(map[string]*parser.FileSpecAST, len(c.files))
	for _, f := range c.files {
		byPath[f.Path] = f
	}

	// edges[from] keeps import statement order
	edges := make(map[string][]string, len(c.files))
	importErrs := make([]error, 0)
	for _, f := range c.files {
		for i := range f.Ast.Imports {
			imp := &f.Ast.Imports[i]
			target, err := resolveImportPath(f, imp, byPath)
			if err != nil {
				importErrs = append(importErrs, err)
				continue
			}
			edges[f.Path] = append(edges[f.Path], target)
		}
	}
	if len(importErrs) > 0 {
		return nil, errors.Join(importErrs...)
	}

	states := make(map[string]visitState, len(c.files))
	stack := make([]string, 0, len(c.files))
	ordered := make([]*parser.FileSpecAST, 0, len(c.files))

	var visit func(path string) error
	visit = func(path string) error {
		switch states[path] {
		case stateDone:
			return nil
		case stateVisiting:
			// report the exact back-edge chain found
			start := 0
			for i, p := range stack {
				if p == path {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, stack[start:]...), path)
			return &CyclicImportError{
				Cycle: cycle,
				Pos:   importPos(byPath[stack[len(stack)-1]], path),
			}
		}
		states[path] = stateVisiting
		stack = append(stack, path)
		for _, next := range edges[path] {
			if err := visit(next); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		states[path] = stateDone
		ordered = append(ordered, byPath[path])
		return nil
	}

	for _, f := range c.files {
		if err := visit(f.Path); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// resolveImportPath maps "@/a/b" to "a/b.data.specml" or "a/b.api.specml".
// Exactly one of the two must exist.
func resolveImportPath(from *parser.FileSpecAST, imp *parser.ImportStmt, byPath map[string]*parser.FileSpecAST) (string, error) {
	pos := imp.Pos
	pos.Filename = from.Path
	base := strings.TrimPrefix(imp.Path, "@/")
	if base == imp.Path || base == "" {
		return "", &UnresolvedImportError{
			File: from.Path, Path: imp.Path, Pos: pos,
			Reason: "import path must start with @/",
		}
	}
	dataPath := base + parser.DataFileSuffix
	apiPath := base + parser.ApiFileSuffix
	_, hasData := byPath[dataPath]
	_, hasAPI := byPath[apiPath]
	switch {
	case hasData && hasAPI:
		return "", &UnresolvedImportError{
			File: from.Path, Path: imp.Path, Pos: pos,
			Reason: "ambiguous: both " + dataPath + " and " + apiPath + " exist",
		}
	case hasData:
		return dataPath, nil
	case hasAPI:
		return apiPath, nil
	}
	return "", &UnresolvedImportError{File: from.Path, Path: imp.Path, Pos: pos}
}

// importPos finds the position of the import statement in from that targets
// the given file, for cycle reporting.
func importPos(from *parser.FileSpecAST, target string) (pos lexer.Position) {
	base := strings.TrimSuffix(strings.TrimSuffix(target, parser.DataFileSuffix), parser.ApiFileSuffix)
	for i := range from.Ast.Imports {
		imp := &from.Ast.Imports[i]
		if strings.TrimPrefix(imp.Path, "@/") == base {
			pos = imp.Pos
			pos.Filename = from.Path
			return pos
		}
	}
	pos.Filename = from.Path
	pos.Line = 1
	pos.Column = 1
	return pos
}
