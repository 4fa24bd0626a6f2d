/*
* Copyright (c) 2024-present SpecML project contributors
 */

// Package ir holds the stable, language-agnostic intermediate representation
// emitted after a successful compilation. The IR is the sole contract with
// downstream generators; field lists keep declaration order, maps are keyed
// by name and serialize with sorted keys, so emission is byte-stable.
package ir

// FormatVersion is bumped on any incompatible IR change.
const FormatVersion = 1

type Document struct {
	Version   int                 `json:"version" yaml:"version"`
	Entities  map[string][]Field  `json:"entities" yaml:"entities"`
	Endpoints map[string]Endpoint `json:"endpoints" yaml:"endpoints"`
}

type Field struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Array    bool     `json:"array,omitempty" yaml:"array,omitempty"`
	Optional bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
	// Ref is the resolved target entity name for reference fields.
	Ref         string       `json:"ref,omitempty" yaml:"ref,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Enum        []string     `json:"enum,omitempty" yaml:"enum,omitempty"`
	Fields      []Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type Constraint struct {
	Name   string   `json:"name" yaml:"name"`
	Number *float64 `json:"number,omitempty" yaml:"number,omitempty"`
	Text   *string  `json:"text,omitempty" yaml:"text,omitempty"`
}

type Endpoint struct {
	Method    string              `json:"method" yaml:"method"`
	Path      string              `json:"path" yaml:"path"`
	Headers   []Field             `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params    []Field             `json:"params,omitempty" yaml:"params,omitempty"`
	Query     []Field             `json:"query,omitempty" yaml:"query,omitempty"`
	Body      []Field             `json:"body,omitempty" yaml:"body,omitempty"`
	Responses map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

type Response struct {
	Status  int     `json:"status" yaml:"status"`
	Headers []Field `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    []Field `json:"body,omitempty" yaml:"body,omitempty"`
}
