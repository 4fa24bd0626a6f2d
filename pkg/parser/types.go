/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

import (
	fs "io/fs"

	"github.com/alecthomas/participle/v2/lexer"
)

// FileSpecAST binds a parsed spec file to its root-relative path.
type FileSpecAST struct {
	Path string
	Ast  *SpecAST
}

type IReadFS interface {
	fs.ReadDirFS
	fs.ReadFileFS
}

type Ident string

// HTTP methods accepted on an endpoint verb line.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// Section roles of an endpoint declaration.
const (
	SectionHeaders = "headers"
	SectionParams  = "params"
	SectionQuery   = "query"
	SectionBody    = "body"
)

type SpecAST struct {
	Imports      []ImportStmt `parser:"@@*"`
	Declarations []DeclStmt   `parser:"@@*"`
}

type ImportStmt struct {
	Pos  lexer.Position
	Path string `parser:"'import' @ImportPath"`
}

// DeclStmt is one named declaration block. A declaration containing a verb
// line is an endpoint, otherwise it is a data entity.
type DeclStmt struct {
	Pos   lexer.Position
	Name  Ident      `parser:"@Ident"`
	Items []ItemExpr `parser:"'{' @@* '}'"`
}

// IsEndpoint reports whether the declaration carries a verb line.
func (d *DeclStmt) IsEndpoint() bool {
	for i := range d.Items {
		if d.Items[i].Verb != nil {
			return true
		}
	}
	return false
}

type ItemExpr struct {
	Copy     *CopyExpr     `parser:"@@"`
	Verb     *VerbExpr     `parser:"| @@"`
	Response *ResponseExpr `parser:"| @@"`
	Section  *SectionExpr  `parser:"| @@"`
	Field    *FieldExpr    `parser:"| @@"`
}

// CopyExpr records a copy source (">Name"). Expansion is deferred to the
// composer: the source may live in a file that is not loaded yet.
type CopyExpr struct {
	Pos  lexer.Position
	Name Ident `parser:"'>' @Ident"`
}

type VerbExpr struct {
	Pos    lexer.Position
	Method string `parser:"@('GET' | 'POST' | 'PUT' | 'PATCH' | 'DELETE')"`
	Path   string `parser:"@Path"`
}

type SectionExpr struct {
	Pos   lexer.Position
	Role  string     `parser:"@('headers' | 'params' | 'query' | 'body')"`
	Items []ItemExpr `parser:"'{' @@* '}'"`
}

type ResponseExpr struct {
	Pos    lexer.Position
	Name   Ident      `parser:"'response' @Ident"`
	Status int        `parser:"'(' @Int ')'"`
	Items  []ItemExpr `parser:"'{' @@* '}'"`
}

type FieldExpr struct {
	Pos      lexer.Position
	Name     Ident       `parser:"@Ident"`
	Optional bool        `parser:"@'?'?"`
	Ref      *RefType    `parser:"( @@"`
	Object   *ObjectType `parser:"| @@"`
	Scalar   *ScalarType `parser:"| @@ )"`
}

// RefType links the field to another named entity ("#Name" or "#Name[]").
type RefType struct {
	Pos     lexer.Position
	Name    Ident `parser:"'#' @Ident"`
	IsArray bool  `parser:"@Array?"`
}

type ObjectType struct {
	Items []ItemExpr `parser:"'{' @@* '}'"`
}

type ScalarType struct {
	Base        string           `parser:"@('string' | 'number' | 'boolean')"`
	IsArray     bool             `parser:"@Array?"`
	Constraints []ConstraintExpr `parser:"('<' @@ (',' @@)* '>')?"`
	Enum        []EnumLiteral    `parser:"('(' @@ ('|' @@)* ')')?"`
}

type ConstraintExpr struct {
	Pos   lexer.Position
	Name  Ident            `parser:"@Ident"`
	Param *ConstraintParam `parser:"(':' @@)?"`
}

type ConstraintParam struct {
	Float  *float64 `parser:"@Float"`
	Int    *int64   `parser:"| @Int"`
	String *string  `parser:"| @String"`
	Ident  *string  `parser:"| @Ident"`
}

// Number returns the numeric parameter value, if any.
func (p *ConstraintParam) Number() (float64, bool) {
	if p == nil {
		return 0, false
	}
	if p.Float != nil {
		return *p.Float, true
	}
	if p.Int != nil {
		return float64(*p.Int), true
	}
	return 0, false
}

// Text returns the string parameter value, if any.
func (p *ConstraintParam) Text() (string, bool) {
	if p == nil {
		return "", false
	}
	if p.String != nil {
		return *p.String, true
	}
	if p.Ident != nil {
		return *p.Ident, true
	}
	return "", false
}

type EnumLiteral struct {
	Pos    lexer.Position
	Float  *float64 `parser:"@Float"`
	Int    *int64   `parser:"| @Int"`
	String *string  `parser:"| @String"`
	Ident  *string  `parser:"| @Ident"`
}

// IsNumeric reports whether the literal is a number.
func (l *EnumLiteral) IsNumeric() bool {
	return l.Float != nil || l.Int != nil
}

// Value returns the literal rendered as text.
func (l *EnumLiteral) Value() string {
	switch {
	case l.Float != nil:
		return formatFloat(*l.Float)
	case l.Int != nil:
		return formatInt(*l.Int)
	case l.String != nil:
		return *l.String
	case l.Ident != nil:
		return *l.Ident
	}
	return ""
}
