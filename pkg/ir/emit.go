/*
* Copyright (c) 2024-present SpecML project contributors
 */

package ir

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/specml/specml/pkg/compiler"
)

// Build serializes a validated compilation result into the IR document.
// This stage is total: the pipeline ordering guarantees the input graph is
// fully resolved and constraint-checked.
func Build(res *compiler.Result) *Document {
	doc := &Document{
		Version:   FormatVersion,
		Entities:  make(map[string][]Field, len(res.Entities)),
		Endpoints: make(map[string]Endpoint, len(res.Endpoints)),
	}
	for name, e := range res.Entities {
		doc.Entities[name] = fieldList(e.Fields)
	}
	for name, ep := range res.Endpoints {
		out := Endpoint{
			Method:  ep.Method,
			Path:    ep.Path,
			Headers: fieldList(ep.Headers),
			Params:  fieldList(ep.Params),
			Query:   fieldList(ep.Query),
			Body:    fieldList(ep.Body),
		}
		if len(ep.Responses) > 0 {
			out.Responses = make(map[string]Response, len(ep.Responses))
			for i := range ep.Responses {
				r := &ep.Responses[i]
				out.Responses[r.Name] = Response{
					Status:  r.Status,
					Headers: fieldList(r.Headers),
					Body:    fieldList(r.Body),
				}
			}
		}
		doc.Endpoints[name] = out
	}
	return doc
}

func fieldList(fields []compiler.ResolvedField) []Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Field, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		irf := Field{
			Name:     f.Name,
			Type:     string(f.Type),
			Array:    f.IsArray,
			Optional: f.Optional,
			Ref:      f.Ref,
			Fields:   fieldList(f.Fields),
		}
		for j := range f.Constraints {
			c := &f.Constraints[j]
			irc := Constraint{Name: c.Name}
			if c.HasNumber {
				n := c.Number
				irc.Number = &n
			}
			if c.HasText {
				t := c.Text
				irc.Text = &t
			}
			irf.Constraints = append(irf.Constraints, irc)
		}
		for j := range f.Enum {
			irf.Enum = append(irf.Enum, f.Enum[j].Value)
		}
		out = append(out, irf)
	}
	return out
}

// EncodeJSON writes the document as indented JSON. encoding/json sorts map
// keys, so output is byte-identical across runs.
func (d *Document) EncodeJSON(w io.Writer) error {
	bytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')
	_, err = w.Write(bytes)
	return err
}

// EncodeYAML writes the document as YAML. yaml.v3 sorts map keys as well.
func (d *Document) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
