/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"github.com/alecthomas/participle/v2/lexer"
)

func (c *composeCtx) pos(p lexer.Position) lexer.Position {
	if p.Filename == "" {
		p.Filename = c.file.Path
	}
	return p
}

// cloneField deep-copies a resolved field so composed entities never alias
// each other or the AST.
func cloneField(f *ResolvedField) ResolvedField {
	out := *f
	if f.Constraints != nil {
		out.Constraints = make([]Constraint, len(f.Constraints))
		copy(out.Constraints, f.Constraints)
	}
	if f.Enum != nil {
		out.Enum = make([]EnumValue, len(f.Enum))
		copy(out.Enum, f.Enum)
	}
	if f.Fields != nil {
		out.Fields = make([]ResolvedField, len(f.Fields))
		for i := range f.Fields {
			out.Fields[i] = cloneField(&f.Fields[i])
		}
	}
	return out
}
