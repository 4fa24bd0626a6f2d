/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// UnresolvedImportError reports an import path that matches no known file,
// or matches more than one (a data and an api file under the same base).
type UnresolvedImportError struct {
	File   string
	Path   string
	Reason string
	Pos    lexer.Position
}

func (e *UnresolvedImportError) Kind() string { return "UnresolvedImportError" }

func (e *UnresolvedImportError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "no matching file"
	}
	return fmt.Sprintf("%s: %s: import %q: %s", e.Pos.String(), e.Kind(), e.Path, reason)
}

// CyclicImportError reports the exact back-edge chain found by the
// depth-first traversal, not necessarily the shortest cycle in the graph.
type CyclicImportError struct {
	Cycle []string
	Pos   lexer.Position
}

func (e *CyclicImportError) Kind() string { return "CyclicImportError" }

func (e *CyclicImportError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos.String(), e.Kind(), strings.Join(e.Cycle, " -> "))
}

// UnknownCopySourceError reports a copy source (">Name") that is not
// registered yet. Copy sources must be defined earlier in the same file or
// in an already-processed imported file.
type UnknownCopySourceError struct {
	File        string
	Declaration string
	Name        string
	Pos         lexer.Position
}

func (e *UnknownCopySourceError) Kind() string { return "UnknownCopySourceError" }

func (e *UnknownCopySourceError) Error() string {
	return fmt.Sprintf("%s: %s: %s copies unknown source %q", e.Pos.String(), e.Kind(), e.Declaration, e.Name)
}

// UnknownReferenceError reports a reference field ("#Name") whose target is
// not a registered data entity.
type UnknownReferenceError struct {
	File        string
	Declaration string
	Field       string
	Name        string
	Pos         lexer.Position
}

func (e *UnknownReferenceError) Kind() string { return "UnknownReferenceError" }

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s: %s: field %q references unknown entity %q", e.Pos.String(), e.Kind(), e.Field, e.Name)
}

// DuplicateNameError reports two declarations registered under one name.
// Entities and endpoints share a single namespace.
type DuplicateNameError struct {
	Name       string
	FirstFile  string
	SecondFile string
	Pos        lexer.Position
}

func (e *DuplicateNameError) Kind() string { return "DuplicateNameError" }

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: %s: %q declared in both %s and %s", e.Pos.String(), e.Kind(), e.Name, e.FirstFile, e.SecondFile)
}

// IncompatibleConstraintError reports a constraint attached to a field whose
// base type it does not support, an unknown constraint name, or a missing or
// ill-typed constraint parameter.
type IncompatibleConstraintError struct {
	File        string
	Declaration string
	Field       string
	Constraint  string
	BaseType    BaseType
	Reason      string
	Pos         lexer.Position
}

func (e *IncompatibleConstraintError) Kind() string { return "IncompatibleConstraintError" }

func (e *IncompatibleConstraintError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = fmt.Sprintf("not applicable to %s", e.BaseType)
	}
	return fmt.Sprintf("%s: %s: constraint %q on field %q: %s", e.Pos.String(), e.Kind(), e.Constraint, e.Field, reason)
}

// EnumTypeMismatchError reports an enum literal that is not representable by
// the field's base type.
type EnumTypeMismatchError struct {
	File        string
	Declaration string
	Field       string
	BaseType    BaseType
	Literal     string
	Pos         lexer.Position
}

func (e *EnumTypeMismatchError) Kind() string { return "EnumTypeMismatchError" }

func (e *EnumTypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: enum literal %q is not a valid %s on field %q", e.Pos.String(), e.Kind(), e.Literal, e.BaseType, e.Field)
}
