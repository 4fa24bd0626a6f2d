/*
* Copyright (c) 2024-present SpecML project contributors
 */

package compiler

// paramKind describes what parameter a constraint takes.
type paramKind int

const (
	paramNone paramKind = iota
	paramNumber
	paramText
)

type constraintSpec struct {
	param   paramKind
	allowed []BaseType
}

// constraintTable is the fixed compatibility table: constraint name ->
// parameter arity and allowed base types. For array fields the element base
// type is checked.
var constraintTable = map[string]constraintSpec{
	"min":       {paramNumber, []BaseType{TypeNumber}},
	"max":       {paramNumber, []BaseType{TypeNumber}},
	"minLength": {paramNumber, []BaseType{TypeString}},
	"maxLength": {paramNumber, []BaseType{TypeString}},
	"length":    {paramNumber, []BaseType{TypeString}},
	"trim":      {paramNone, []BaseType{TypeString}},
	"uppercase": {paramNone, []BaseType{TypeString}},
	"lowercase": {paramNone, []BaseType{TypeString}},
	"isEmail":   {paramNone, []BaseType{TypeString}},
	"isISO":     {paramNone, []BaseType{TypeString}},
	"pattern":   {paramText, []BaseType{TypeString}},
	"unique":    {paramNone, []BaseType{TypeString, TypeNumber}},
}
