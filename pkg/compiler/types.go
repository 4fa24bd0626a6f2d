/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/specml/specml/pkg/parser"
)

// BaseType is the resolved value type of a field.
type BaseType string

const (
	TypeString  BaseType = "string"
	TypeNumber  BaseType = "number"
	TypeBoolean BaseType = "boolean"
	TypeObject  BaseType = "object"
	TypeRef     BaseType = "ref"
)

// Constraint is a named rule attached to a field, with an optional numeric
// or textual parameter.
type Constraint struct {
	Name      string
	HasNumber bool
	Number    float64
	HasText   bool
	Text      string
	Pos       lexer.Position
}

// EnumValue is one literal of a closed allowed-value set.
type EnumValue struct {
	Value   string
	Numeric bool
	Pos     lexer.Position
}

// ResolvedField is a fully expanded field. For Type == TypeRef, Ref holds
// the target entity name; for Type == TypeObject, Fields holds the nested
// field list.
type ResolvedField struct {
	Name        string
	Type        BaseType
	Ref         string
	IsArray     bool
	Optional    bool
	Constraints []Constraint
	Enum        []EnumValue
	Fields      []ResolvedField
	Pos         lexer.Position
}

// ResolvedEntity is the fully expanded form of a data declaration: all
// copied fields flattened into one ordered list. Never mutated after the
// composer phase; it does not alias the AST.
type ResolvedEntity struct {
	Name   string
	File   string
	Pos    lexer.Position
	Fields []ResolvedField
}

type ResolvedResponse struct {
	Name    string
	Status  int
	Headers []ResolvedField
	Body    []ResolvedField
	Pos     lexer.Position
}

// ResolvedEndpoint is the fully expanded form of an endpoint declaration.
type ResolvedEndpoint struct {
	Name      string
	File      string
	Pos       lexer.Position
	Method    string
	Path      string
	Headers   []ResolvedField
	Params    []ResolvedField
	Query     []ResolvedField
	Body      []ResolvedField
	Responses []ResolvedResponse
}

// Warning is a non-fatal finding, e.g. a type-changing field override.
type Warning struct {
	Pos lexer.Position
	Msg string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos.String(), w.Msg)
}

// Result is the output of a compilation run.
type Result struct {
	// Files in topological order: every file after all files it imports.
	Files     []*parser.FileSpecAST
	Entities  map[string]*ResolvedEntity
	Endpoints map[string]*ResolvedEndpoint
	Warnings  []Warning
}

// basicContext carries the whole state of one compilation run. Nothing is
// process-global: tests and watch-mode recompiles each get a fresh context.
type basicContext struct {
	files     []*parser.FileSpecAST
	entities  map[string]*ResolvedEntity
	endpoints map[string]*ResolvedEndpoint
	declFiles map[string]string // declaration name -> defining file
	warnings  []Warning
	errs      []error
}

func newBasicContext(files []*parser.FileSpecAST) *basicContext {
	return &basicContext{
		files:     files,
		entities:  make(map[string]*ResolvedEntity),
		endpoints: make(map[string]*ResolvedEndpoint),
		declFiles: make(map[string]string),
		errs:      make([]error, 0),
	}
}

func (c *basicContext) err(err error) {
	c.errs = append(c.errs, err)
}

func (c *basicContext) warn(pos lexer.Position, format string, args ...interface{}) {
	c.warnings = append(c.warnings, Warning{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}
