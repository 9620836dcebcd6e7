//go:build !wasip1

package sdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeDefinitionToJSONMinimal(t *testing.T) {
	def := NewNodeDefinition("math_add", "Add", "Adds two numbers", "Math")
	def.AddPin(InputPin("exec_in", "In", "", TypeExec)).
		AddPin(OutputPin("exec_out", "Out", "", TypeExec))

	got := def.ToJSON()

	want := `{"name":"math_add","friendly_name":"Add","description":"Adds two numbers","category":"Math",` +
		`"pins":[{"name":"exec_in","friendly_name":"In","description":"","pin_type":"Input","data_type":"Exec"},` +
		`{"name":"exec_out","friendly_name":"Out","description":"","pin_type":"Output","data_type":"Exec"}],` +
		`"long_running":false,"abi_version":1}`
	assert.Equal(t, want, got)
}

func TestNodeDefinitionOptionalFieldsOmittedWhenUnset(t *testing.T) {
	def := NewNodeDefinition("n", "N", "", "Test")
	got := def.ToJSON()

	assert.NotContains(t, got, `"icon"`)
	assert.NotContains(t, got, `"scores"`)
	assert.NotContains(t, got, `"docs"`)
	assert.NotContains(t, got, `"permissions"`)
	assert.NotContains(t, got, `"default_value"`)
}

func TestNodeDefinitionOptionalFieldsEmitted(t *testing.T) {
	def := NewNodeDefinition("http_get", "HTTP GET", "Fetches a URL", "Network")
	def.SetIcon("globe").
		SetDocs("Performs a GET request.").
		SetLongRunning(true).
		SetScores(NodeScores{Privacy: 50, Security: 70, Performance: 80, Governance: 60, Reliability: 90, Cost: 40}).
		AddPermission("http").
		AddPermission("vars")

	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(def.ToJSON()), &parsed))

	assert.JSONEq(t, `"globe"`, string(parsed["icon"]))
	assert.JSONEq(t, `"Performs a GET request."`, string(parsed["docs"]))
	assert.JSONEq(t, `true`, string(parsed["long_running"]))
	assert.JSONEq(t, `["http","vars"]`, string(parsed["permissions"]))
	assert.JSONEq(t,
		`{"privacy":50,"security":70,"performance":80,"governance":60,"reliability":90,"cost":40}`,
		string(parsed["scores"]))
}

func TestPinDefinitionDefaultValueIsRawJSON(t *testing.T) {
	pin := InputPin("multiplier", "Multiplier", "", TypeI64).WithDefault("3")
	assert.Contains(t, pin.ToJSON(), `"default_value":3`)

	pin = InputPin("greeting", "Greeting", "", TypeString).WithDefault(`"hi"`)
	assert.Contains(t, pin.ToJSON(), `"default_value":"hi"`)
}

func TestPinDefinitionValueTypeAndSchema(t *testing.T) {
	pin := InputPin("items", "Items", "", TypeStruct).
		WithValueType("Array").
		WithSchema(`{"type":"object"}`)

	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(pin.ToJSON()), &parsed))

	assert.JSONEq(t, `"Array"`, string(parsed["value_type"]))
	// Schema travels as a string value, not nested JSON.
	assert.JSONEq(t, `"{\"type\":\"object\"}"`, string(parsed["schema"]))
}

func TestNodeDefinitionEscapesMetadata(t *testing.T) {
	def := NewNodeDefinition(`quote"node`, "Line\nBreak", `back\slash`, "Test")
	got := def.ToJSON()

	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(got), &parsed), "escaped output must stay valid JSON")
	assert.Contains(t, got, `"name":"quote\"node"`)
	assert.Contains(t, got, `"friendly_name":"Line\nBreak"`)
	assert.Contains(t, got, `"description":"back\\slash"`)
}

func TestSchemaForStruct(t *testing.T) {
	type point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	schema, err := SchemaFor[point]()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(schema), &parsed))
	assert.Equal(t, "object", parsed["type"])

	pin := WithSchemaFor[point](InputPin("p", "Point", "", TypeStruct))
	require.NotNil(t, pin.Schema)
	assert.Equal(t, schema, *pin.Schema)
}
