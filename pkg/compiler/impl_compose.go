/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/specml/specml/pkg/parser"
)

type composeCtx struct {
	*basicContext
	file *parser.FileSpecAST
	decl *parser.DeclStmt
}

// compose processes files strictly in topological order, maintaining the
// global declaration-name mapping. Copy sources and references therefore
// resolve only against declarations defined earlier in the same file or in
// an already-processed imported file.
func compose(c *basicContext) {
	cc := composeCtx{basicContext: c}
	for _, f := range c.files {
		cc.file = f
		for i := range f.Ast.Declarations {
			d := &f.Ast.Declarations[i]
			cc.decl = d
			if d.IsEndpoint() {
				cc.composeEndpoint(d)
			} else {
				cc.composeEntity(d)
			}
		}
	}
}

func (c *composeCtx) composeEntity(d *parser.DeclStmt) {
	if strings.HasSuffix(c.file.Path, parser.ApiFileSuffix) {
		c.warn(c.pos(d.Pos), "data entity %s declared in an api file", d.Name)
	}
	entity := &ResolvedEntity{
		Name:   string(d.Name),
		File:   c.file.Path,
		Pos:    c.pos(d.Pos),
		Fields: c.fieldList(d.Items, false),
	}
	if !c.register(string(d.Name), c.pos(d.Pos)) {
		return
	}
	c.entities[entity.Name] = entity
}

func (c *composeCtx) composeEndpoint(d *parser.DeclStmt) {
	if strings.HasSuffix(c.file.Path, parser.DataFileSuffix) {
		c.warn(c.pos(d.Pos), "endpoint %s declared in a data file", d.Name)
	}
	ep := &ResolvedEndpoint{
		Name: string(d.Name),
		File: c.file.Path,
		Pos:  c.pos(d.Pos),
	}

	// Top-level fields and copies outside any section belong to the body.
	bodyItems := make([]parser.ItemExpr, 0)
	sections := map[string][]parser.ItemExpr{}
	for i := range d.Items {
		item := &d.Items[i]
		switch {
		case item.Verb != nil:
			if ep.Method != "" {
				c.warn(c.pos(item.Verb.Pos), "endpoint %s has multiple verb lines, first one wins", d.Name)
				continue
			}
			ep.Method = item.Verb.Method
			ep.Path = item.Verb.Path
		case item.Section != nil:
			sections[item.Section.Role] = append(sections[item.Section.Role], item.Section.Items...)
		case item.Response != nil:
			ep.Responses = append(ep.Responses, c.composeResponse(item.Response))
		default:
			bodyItems = append(bodyItems, *item)
		}
	}
	bodyItems = append(bodyItems, sections[parser.SectionBody]...)

	ep.Headers = c.fieldList(sections[parser.SectionHeaders], true)
	ep.Params = c.fieldList(sections[parser.SectionParams], true)
	ep.Query = c.fieldList(sections[parser.SectionQuery], true)
	ep.Body = c.fieldList(bodyItems, true)

	if !c.register(string(d.Name), c.pos(d.Pos)) {
		return
	}
	c.endpoints[ep.Name] = ep
}

func (c *composeCtx) composeResponse(r *parser.ResponseExpr) ResolvedResponse {
	resp := ResolvedResponse{
		Name:   string(r.Name),
		Status: r.Status,
		Pos:    c.pos(r.Pos),
	}
	bodyItems := make([]parser.ItemExpr, 0, len(r.Items))
	headerItems := make([]parser.ItemExpr, 0)
	for i := range r.Items {
		item := &r.Items[i]
		switch {
		case item.Section != nil && item.Section.Role == parser.SectionHeaders:
			headerItems = append(headerItems, item.Section.Items...)
		case item.Section != nil && item.Section.Role == parser.SectionBody:
			bodyItems = append(bodyItems, item.Section.Items...)
		case item.Section != nil:
			c.warn(c.pos(item.Section.Pos), "section %q is not allowed in a response, expected headers or body", item.Section.Role)
		case item.Verb != nil:
			c.warn(c.pos(item.Verb.Pos), "verb line is not allowed in a response")
		case item.Response != nil:
			c.warn(c.pos(item.Response.Pos), "responses do not nest")
		default:
			bodyItems = append(bodyItems, *item)
		}
	}
	resp.Headers = c.fieldList(headerItems, true)
	resp.Body = c.fieldList(bodyItems, true)
	return resp
}

// fieldList flattens items into one ordered field list:
//  1. copied fields come first, in copy-statement order; among copy sources
//     sharing a field name the first listed wins;
//  2. locally declared fields follow; a local field sharing a name with an
//     inherited one replaces it in place at the inherited slot.
func (c *composeCtx) fieldList(items []parser.ItemExpr, endpoint bool) []ResolvedField {
	out := make([]ResolvedField, 0, len(items))
	index := make(map[string]int, len(items))

	place := func(rf ResolvedField) {
		if at, ok := index[rf.Name]; ok {
			if out[at].Type != rf.Type {
				c.warn(rf.Pos, "field %q overrides inherited %s with %s", rf.Name, out[at].Type, rf.Type)
			}
			out[at] = rf
			return
		}
		index[rf.Name] = len(out)
		out = append(out, rf)
	}

	// copy sources expand first, wherever the copy line is written
	for i := range items {
		item := &items[i]
		if item.Copy == nil {
			continue
		}
		src, ok := c.entities[string(item.Copy.Name)]
		if !ok {
			c.err(&UnknownCopySourceError{
				File:        c.file.Path,
				Declaration: string(c.decl.Name),
				Name:        string(item.Copy.Name),
				Pos:         c.pos(item.Copy.Pos),
			})
			continue
		}
		for j := range src.Fields {
			f := src.Fields[j]
			if _, dup := index[f.Name]; dup {
				continue // first-listed copy source wins
			}
			index[f.Name] = len(out)
			out = append(out, cloneField(&f))
		}
	}

	for i := range items {
		item := &items[i]
		switch {
		case item.Copy != nil:
			// expanded above
		case item.Field != nil:
			place(c.resolveField(item.Field))
		case item.Section != nil:
			if endpoint {
				c.warn(c.pos(item.Section.Pos), "nested %q section ignored", item.Section.Role)
				continue
			}
			// a section in a data declaration degrades to a nested object
			c.warn(c.pos(item.Section.Pos), "section %q in a data declaration, treated as a nested object field", item.Section.Role)
			place(ResolvedField{
				Name:   item.Section.Role,
				Type:   TypeObject,
				Fields: c.fieldList(item.Section.Items, false),
				Pos:    c.pos(item.Section.Pos),
			})
		case item.Response != nil:
			c.warn(c.pos(item.Response.Pos), "response block outside an endpoint ignored")
		case item.Verb != nil:
			c.warn(c.pos(item.Verb.Pos), "verb line ignored here")
		}
	}
	return out
}

func (c *composeCtx) resolveField(f *parser.FieldExpr) ResolvedField {
	rf := ResolvedField{
		Name:     string(f.Name),
		Optional: f.Optional,
		Pos:      c.pos(f.Pos),
	}
	switch {
	case f.Ref != nil:
		rf.Type = TypeRef
		rf.Ref = string(f.Ref.Name)
		rf.IsArray = f.Ref.IsArray
		if _, ok := c.entities[rf.Ref]; !ok {
			c.err(&UnknownReferenceError{
				File:        c.file.Path,
				Declaration: string(c.decl.Name),
				Field:       rf.Name,
				Name:        rf.Ref,
				Pos:         c.pos(f.Ref.Pos),
			})
		}
	case f.Object != nil:
		rf.Type = TypeObject
		rf.Fields = c.fieldList(f.Object.Items, false)
	case f.Scalar != nil:
		rf.Type = BaseType(f.Scalar.Base)
		rf.IsArray = f.Scalar.IsArray
		for i := range f.Scalar.Constraints {
			rf.Constraints = append(rf.Constraints, c.resolveConstraint(&f.Scalar.Constraints[i]))
		}
		for i := range f.Scalar.Enum {
			lit := &f.Scalar.Enum[i]
			rf.Enum = append(rf.Enum, EnumValue{
				Value:   lit.Value(),
				Numeric: lit.IsNumeric(),
				Pos:     c.pos(lit.Pos),
			})
		}
	}
	return rf
}

func (c *composeCtx) resolveConstraint(ce *parser.ConstraintExpr) Constraint {
	con := Constraint{
		Name: string(ce.Name),
		Pos:  c.pos(ce.Pos),
	}
	if n, ok := ce.Param.Number(); ok {
		con.HasNumber = true
		con.Number = n
	} else if s, ok := ce.Param.Text(); ok {
		con.HasText = true
		con.Text = s
	}
	return con
}

// register claims name in the global namespace shared by entities and
// endpoints. Reports DuplicateNameError naming both files.
func (c *composeCtx) register(name string, pos lexer.Position) bool {
	if first, ok := c.declFiles[name]; ok {
		c.err(&DuplicateNameError{
			Name:       name,
			FirstFile:  first,
			SecondFile: c.file.Path,
			Pos:        pos,
		})
		return false
	}
	c.declFiles[name] = c.file.Path
	return true
}
