/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type violation struct {
	file  string
	decl  string
	field string
	err   error
}

type validateCtx struct {
	*basicContext
	found []violation
}

// validate walks every resolved field recursively and checks each constraint
// against the compatibility table, plus enum closure. Exhaustive: all
// violations across the whole graph are collected in one pass, ordered by
// file, then declaration, then field.
func validate(c *basicContext) {
	vc := validateCtx{basicContext: c}

	for _, name := range sortedNames(c.entities) {
		e := c.entities[name]
		vc.fields(e.File, e.Name, "", e.Fields)
	}
	for _, name := range sortedNames(c.endpoints) {
		ep := c.endpoints[name]
		vc.fields(ep.File, ep.Name, "headers.", ep.Headers)
		vc.fields(ep.File, ep.Name, "params.", ep.Params)
		vc.fields(ep.File, ep.Name, "query.", ep.Query)
		vc.fields(ep.File, ep.Name, "body.", ep.Body)
		for i := range ep.Responses {
			r := &ep.Responses[i]
			vc.fields(ep.File, ep.Name, "response."+r.Name+".headers.", r.Headers)
			vc.fields(ep.File, ep.Name, "response."+r.Name+".body.", r.Body)
		}
	}

	slices.SortStableFunc(vc.found, func(a, b violation) bool {
		if a.file != b.file {
			return a.file < b.file
		}
		if a.decl != b.decl {
			return a.decl < b.decl
		}
		return a.field < b.field
	})
	for i := range vc.found {
		c.err(vc.found[i].err)
	}
}

func (c *validateCtx) fields(file, decl, prefix string, fields []ResolvedField) {
	for i := range fields {
		f := &fields[i]
		path := prefix + f.Name
		for j := range f.Constraints {
			c.constraint(file, decl, path, f, &f.Constraints[j])
		}
		c.enumClosure(file, decl, path, f)
		if f.Type == TypeObject {
			c.fields(file, decl, path+".", f.Fields)
		}
	}
}

func (c *validateCtx) constraint(file, decl, path string, f *ResolvedField, con *Constraint) {
	fail := func(reason string) {
		c.found = append(c.found, violation{
			file: file, decl: decl, field: path,
			err: &IncompatibleConstraintError{
				File:        file,
				Declaration: decl,
				Field:       path,
				Constraint:  con.Name,
				BaseType:    f.Type,
				Reason:      reason,
				Pos:         con.Pos,
			},
		})
	}

	spec, known := constraintTable[con.Name]
	if !known {
		fail("unknown constraint")
		return
	}
	if !slices.Contains(spec.allowed, f.Type) {
		fail("")
		return
	}
	switch spec.param {
	case paramNone:
		if con.HasNumber || con.HasText {
			fail("takes no parameter")
		}
	case paramNumber:
		if !con.HasNumber {
			fail("requires a numeric parameter")
		}
	case paramText:
		if !con.HasText {
			fail("requires a string parameter")
		}
	}
}

// enumClosure checks that every literal of an allowed-value set is
// representable by the field's base type.
func (c *validateCtx) enumClosure(file, decl, path string, f *ResolvedField) {
	if len(f.Enum) == 0 {
		return
	}
	for i := range f.Enum {
		v := &f.Enum[i]
		ok := false
		switch f.Type {
		case TypeNumber:
			ok = v.Numeric
		case TypeString:
			ok = !v.Numeric
		}
		if ok {
			continue
		}
		c.found = append(c.found, violation{
			file: file, decl: decl, field: path,
			err: &EnumTypeMismatchError{
				File:        file,
				Declaration: decl,
				Field:       path,
				BaseType:    f.Type,
				Literal:     v.Value,
				Pos:         v.Pos,
			},
		})
	}
}

func sortedNames[V any](m map[string]*V) []string {
	names := maps.Keys(m)
	slices.Sort(names)
	return names
}
