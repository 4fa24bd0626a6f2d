/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ParseFile_BasicUsage(t *testing.T) {
	require := require.New(t)

	fileAst, err := ParseFile("orders.api.specml", `
import @/models/order
import @/models/customer

// create a new order
CreateOrder {
  POST /orders
  headers {
    authorization string<minLength:1>
  }
  body {
    >Order
    note? string<maxLength:500>
  }
  response created(201) {
    body { >Order }
  }
}
`)
	require.NoError(err)
	require.Equal("orders.api.specml", fileAst.Path)

	ast := fileAst.Ast
	require.Len(ast.Imports, 2)
	require.Equal("@/models/order", ast.Imports[0].Path)
	require.Equal("@/models/customer", ast.Imports[1].Path)

	require.Len(ast.Declarations, 1)
	decl := &ast.Declarations[0]
	require.Equal(Ident("CreateOrder"), decl.Name)
	require.True(decl.IsEndpoint())
	require.Len(decl.Items, 4)

	verb := decl.Items[0].Verb
	require.NotNil(verb)
	require.Equal(MethodPost, verb.Method)
	require.Equal("/orders", verb.Path)

	headers := decl.Items[1].Section
	require.NotNil(headers)
	require.Equal(SectionHeaders, headers.Role)
	require.Len(headers.Items, 1)
	auth := headers.Items[0].Field
	require.NotNil(auth)
	require.Equal(Ident("authorization"), auth.Name)
	require.False(auth.Optional)
	require.NotNil(auth.Scalar)
	require.Equal("string", auth.Scalar.Base)
	require.Len(auth.Scalar.Constraints, 1)
	require.Equal(Ident("minLength"), auth.Scalar.Constraints[0].Name)
	n, ok := auth.Scalar.Constraints[0].Param.Number()
	require.True(ok)
	require.Equal(float64(1), n)

	body := decl.Items[2].Section
	require.NotNil(body)
	require.Equal(SectionBody, body.Role)
	require.NotNil(body.Items[0].Copy)
	require.Equal(Ident("Order"), body.Items[0].Copy.Name)
	note := body.Items[1].Field
	require.NotNil(note)
	require.True(note.Optional)

	resp := decl.Items[3].Response
	require.NotNil(resp)
	require.Equal(Ident("created"), resp.Name)
	require.Equal(201, resp.Status)
}

func Test_ParseFile_DataDeclaration(t *testing.T) {
	require := require.New(t)

	fileAst, err := ParseFile("order.data.specml", `
Order {
  >Audited
  id string<unique>
  status string(pending|paid|shipped)
  priority? number(1|2|3)
  customer #Customer
  items #OrderItem[]
  tags string[]
  meta {
    source string
    attempt number<min:0,max:10>
  }
}
`)
	require.NoError(err)
	decl := &fileAst.Ast.Declarations[0]
	require.False(decl.IsEndpoint())
	require.Len(decl.Items, 8)

	require.Equal(Ident("Audited"), decl.Items[0].Copy.Name)

	status := decl.Items[2].Field
	require.Equal(Ident("status"), status.Name)
	require.Len(status.Scalar.Enum, 3)
	require.Equal("pending", status.Scalar.Enum[0].Value())
	require.False(status.Scalar.Enum[0].IsNumeric())

	priority := decl.Items[3].Field
	require.True(priority.Optional)
	require.True(priority.Scalar.Enum[0].IsNumeric())
	require.Equal("1", priority.Scalar.Enum[0].Value())

	customer := decl.Items[4].Field
	require.NotNil(customer.Ref)
	require.Equal(Ident("Customer"), customer.Ref.Name)
	require.False(customer.Ref.IsArray)

	items := decl.Items[5].Field
	require.NotNil(items.Ref)
	require.True(items.Ref.IsArray)

	tags := decl.Items[6].Field
	require.NotNil(tags.Scalar)
	require.True(tags.Scalar.IsArray)

	meta := decl.Items[7].Field
	require.NotNil(meta.Object)
	require.Len(meta.Object.Items, 2)
	attempt := meta.Object.Items[1].Field
	require.Len(attempt.Scalar.Constraints, 2)
	max, ok := attempt.Scalar.Constraints[1].Param.Number()
	require.True(ok)
	require.Equal(float64(10), max)
}

func Test_ParseFile_Positions(t *testing.T) {
	require := require.New(t)

	fileAst, err := ParseFile("a.data.specml", "Order {\n  id string\n}\n")
	require.NoError(err)
	decl := &fileAst.Ast.Declarations[0]
	require.Equal("a.data.specml", decl.Pos.Filename)
	require.Equal(1, decl.Pos.Line)
	field := decl.Items[0].Field
	require.Equal(2, field.Pos.Line)
	require.Equal(3, field.Pos.Column)
}

func Test_ParseFile_ParseError(t *testing.T) {
	require := require.New(t)

	_, err := ParseFile("broken.data.specml", "Order {\n  id string\n")
	require.Error(err)
	var parseErr *ParseError
	require.ErrorAs(err, &parseErr)
	require.Equal("ParseError", parseErr.Kind())
	require.Equal("broken.data.specml", parseErr.Pos.Filename)
}

func Test_ParseFile_LexError(t *testing.T) {
	require := require.New(t)

	_, err := ParseFile("broken.data.specml", "Order {\n  id string<pattern:\"unterminated>\n}\n")
	require.Error(err)
	var lexErr *LexError
	require.ErrorAs(err, &lexErr)
	require.Equal("LexError", lexErr.Kind())
	require.Equal(2, lexErr.Pos.Line)
}

func Test_ParseFile_CommentsElided(t *testing.T) {
	require := require.New(t)

	fileAst, err := ParseFile("c.data.specml", `
// leading comment
Order { // trailing comment
  // only field
  id string
}
`)
	require.NoError(err)
	require.Len(fileAst.Ast.Declarations, 1)
	require.Len(fileAst.Ast.Declarations[0].Items, 1)
}

func Test_ParseFS(t *testing.T) {
	require := require.New(t)

	files, err := ParseFS(testFS(map[string]string{
		"models/a.data.specml": "A { id string }",
		"models/b.data.specml": "B { id string }",
		"api/c.api.specml":     "C { GET /c }",
		"readme.txt":           "not a spec file",
	}), ".")
	require.NoError(err)
	require.Len(files, 3)
	// discovery order is the sorted walk order
	require.Equal("api/c.api.specml", files[0].Path)
	require.Equal("models/a.data.specml", files[1].Path)
	require.Equal("models/b.data.specml", files[2].Path)
}

func Test_ParseFS_CollectsAllErrors(t *testing.T) {
	require := require.New(t)

	files, err := ParseFS(testFS(map[string]string{
		"a.data.specml": "A { id string }",
		"b.data.specml": "B { broken",
		"c.data.specml": "C {",
	}), ".")
	require.Error(err)
	// the valid file still parses, both broken files are reported
	require.Len(files, 1)
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(ok)
	require.Len(joined.Unwrap(), 2)
}

func Test_ParseFS_NoSpecFiles(t *testing.T) {
	require := require.New(t)

	_, err := ParseFS(testFS(map[string]string{"readme.txt": "hi"}), ".")
	require.ErrorIs(err, ErrDirContainsNoSpecFiles)
}
