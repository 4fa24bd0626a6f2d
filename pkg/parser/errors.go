/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var ErrDirContainsNoSpecFiles = errors.New("directory contains no spec files")

// LexError reports an unrecognized symbol or unterminated literal.
type LexError struct {
	Pos lexer.Position
	Msg string
}

func (e *LexError) Kind() string { return "LexError" }

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos.String(), e.Kind(), e.Msg)
}

// ParseError reports malformed syntax. Parsing of one file is atomic: a
// single ParseError aborts that file's parse and no partial AST is returned.
type ParseError struct {
	Pos      lexer.Position
	Expected string
	Found    string
}

func (e *ParseError) Kind() string { return "ParseError" }

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s: expected %s, found %q", e.Pos.String(), e.Kind(), e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos.String(), e.Kind(), e.Found)
}
