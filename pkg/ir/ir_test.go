/*
* Copyright (c) 2024-present SpecML project contributors
 */

package ir

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specml/specml/pkg/compiler"
	"github.com/specml/specml/pkg/parser"
)

var sources = map[string]string{
	"models/address.data.specml": `
Address {
  street string<minLength:1>
  country string<length:2,uppercase>
}
`,
	"models/order.data.specml": `
import @/models/address

Order {
  id string<unique>
  status string(pending|paid)
  shippingAddress #Address
  total number<min:0>
}
`,
	"api/orders.api.specml": `
import @/models/order

GetOrder {
  GET /orders/:orderId
  params { orderId string }
  response ok(200) { body { >Order } }
  response notFound(404) { body { message string } }
}
`,
}

func compileSources(t *testing.T) *compiler.Result {
	require := require.New(t)
	asts := make([]*parser.FileSpecAST, 0, len(sources))
	for _, path := range []string{"api/orders.api.specml", "models/address.data.specml", "models/order.data.specml"} {
		fileAst, err := parser.ParseFile(path, sources[path])
		require.NoError(err)
		asts = append(asts, fileAst)
	}
	res, err := compiler.CompileFiles(asts)
	require.NoError(err)
	return res
}

func Test_Build(t *testing.T) {
	require := require.New(t)

	doc := Build(compileSources(t))
	require.Equal(FormatVersion, doc.Version)
	require.Len(doc.Entities, 2)
	require.Len(doc.Endpoints, 1)

	order := doc.Entities["Order"]
	require.Len(order, 4)
	require.Equal("id", order[0].Name)
	require.Equal("string", order[0].Type)
	require.Equal([]Constraint{{Name: "unique"}}, order[0].Constraints)

	require.Equal([]string{"pending", "paid"}, order[1].Enum)

	// references carry the resolved target entity name
	require.Equal("ref", order[2].Type)
	require.Equal("Address", order[2].Ref)

	total := order[3]
	require.Len(total.Constraints, 1)
	require.Equal("min", total.Constraints[0].Name)
	require.NotNil(total.Constraints[0].Number)
	require.Equal(float64(0), *total.Constraints[0].Number)

	ep := doc.Endpoints["GetOrder"]
	require.Equal("GET", ep.Method)
	require.Equal("/orders/:orderId", ep.Path)
	require.Len(ep.Responses, 2)
	require.Equal(200, ep.Responses["ok"].Status)
	require.Len(ep.Responses["ok"].Body, 4) // flattened Order
	require.Equal(404, ep.Responses["notFound"].Status)
}

func Test_EncodeJSON_Deterministic(t *testing.T) {
	require := require.New(t)

	var first, second bytes.Buffer
	require.NoError(Build(compileSources(t)).EncodeJSON(&first))
	require.NoError(Build(compileSources(t)).EncodeJSON(&second))
	require.Equal(first.Bytes(), second.Bytes())

	var decoded map[string]interface{}
	require.NoError(json.Unmarshal(first.Bytes(), &decoded))
	require.Contains(decoded, "version")
	require.Contains(decoded, "entities")
	require.Contains(decoded, "endpoints")
}

func Test_EncodeYAML_Deterministic(t *testing.T) {
	require := require.New(t)

	var first, second bytes.Buffer
	require.NoError(Build(compileSources(t)).EncodeYAML(&first))
	require.NoError(Build(compileSources(t)).EncodeYAML(&second))
	require.Equal(first.Bytes(), second.Bytes())
	require.Contains(first.String(), "version: 1")
}
