package host

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/api"

	sdk "github.com/TM9657/flow-like-sdk-go"
)

// fakeMemory backs ReadPacked tests without a runtime. Only Read is
// implemented; the embedded interface covers the rest.
type fakeMemory struct {
	api.Memory
	data []byte
}

func (f fakeMemory) Read(offset, count uint32) ([]byte, bool) {
	if int(offset)+int(count) > len(f.data) {
		return nil, false
	}
	return f.data[offset : offset+count], true
}

func TestReadPacked(t *testing.T) {
	mem := fakeMemory{data: []byte("xxhello world")}

	data, err := ReadPacked(mem, (2<<32)|11)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	// The copy must not alias guest memory.
	mem.data[2] = 'H'
	assert.Equal(t, "hello world", string(data))
}

func TestReadPackedEmptyReference(t *testing.T) {
	mem := fakeMemory{data: []byte("data")}

	_, err := ReadPacked(mem, 0)
	assert.Error(t, err)
	_, err = ReadPacked(mem, 1<<32) // ptr set, len zero
	assert.Error(t, err)
	_, err = ReadPacked(mem, 7) // len set, ptr zero
	assert.Error(t, err)
}

func TestReadPackedOutOfBounds(t *testing.T) {
	mem := fakeMemory{data: []byte("tiny")}
	_, err := ReadPacked(mem, (2<<32)|100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")
}

// The host wire structs must accept exactly what the guest serializes.
func TestDefinitionWireCompatibility(t *testing.T) {
	def := sdk.NewNodeDefinition("http_fetch", "HTTP Fetch", "Fetches a URL", "Network")
	def.AddPin(sdk.InputPin(sdk.ExecIn, "In", "", sdk.TypeExec)).
		AddPin(sdk.InputPin("url", "URL", "", sdk.TypeString).WithDefault(`"https://example.com"`)).
		AddPin(sdk.InputPin("retries", "Retries", "", sdk.TypeI64).WithDefault("3")).
		AddPin(sdk.OutputPin("status", "Status", "", sdk.TypeI64)).
		AddPermission("http")
	def.SetScores(sdk.NodeScores{Privacy: 10})

	var parsed NodeDefinition
	require.NoError(t, json.Unmarshal([]byte(def.ToJSON()), &parsed))

	assert.Equal(t, "http_fetch", parsed.Name)
	assert.Equal(t, uint32(1), parsed.ABIVersion)
	assert.Equal(t, []string{"http"}, parsed.Permissions)
	require.Len(t, parsed.Pins, 4)
	assert.Equal(t, json.RawMessage(`"https://example.com"`), parsed.Pins[1].DefaultValue)
	assert.Equal(t, json.RawMessage("3"), parsed.Pins[2].DefaultValue)
	assert.JSONEq(t, `{"privacy":10,"security":0,"performance":0,"governance":0,"reliability":0,"cost":0}`,
		string(parsed.Scores))
}

func TestRunResultWireCompatibility(t *testing.T) {
	result := sdk.SuccessResult()
	result.SetOutput("count", "42").
		SetOutput("name", `"alpha"`).
		ActivateExecPin(sdk.ExecOut)

	var parsed RunResult
	require.NoError(t, json.Unmarshal([]byte(result.ToJSON()), &parsed))

	assert.Equal(t, json.RawMessage("42"), parsed.Outputs["count"])
	assert.Equal(t, json.RawMessage(`"alpha"`), parsed.Outputs["name"])
	assert.Equal(t, []string{sdk.ExecOut}, parsed.ActivateExec)
	assert.Nil(t, parsed.Error)
	assert.False(t, parsed.Pending)

	failed := sdk.FailResult("boom")
	parsed = RunResult{}
	require.NoError(t, json.Unmarshal([]byte(failed.ToJSON()), &parsed))
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "boom", *parsed.Error)
}

func TestRunEnvelopeWireCompatibility(t *testing.T) {
	envelope := runEnvelope{
		Inputs: map[string]json.RawMessage{
			"input_text": json.RawMessage(`"ab"`),
			"multiplier": json.RawMessage("3"),
		},
		NodeID:      "node-1",
		NodeName:    "repeat_text",
		RunID:       "run-1",
		AppID:       "app-1",
		BoardID:     "board-1",
		UserID:      "user-1",
		StreamState: true,
		LogLevel:    2,
	}
	data, err := json.Marshal(envelope)
	require.NoError(t, err)

	parsed := sdk.ParseExecutionInput(string(data))
	assert.Equal(t, "repeat_text", parsed.NodeName)
	assert.Equal(t, "node-1", parsed.NodeID)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.True(t, parsed.StreamState)
	assert.Equal(t, int32(2), parsed.LogLevel)
	assert.Equal(t, `"ab"`, parsed.Inputs["input_text"])
	assert.Equal(t, "3", parsed.Inputs["multiplier"])
}
