//go:build !wasip1

package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefinition(t *testing.T) {
	valid := NewNodeDefinition("ok", "OK", "", "Test")
	valid.AddPin(InputPin("exec_in", "In", "", TypeExec))

	tests := []struct {
		name    string
		mutate  func(*NodeDefinition)
		wantErr string
	}{
		{name: "valid", mutate: func(*NodeDefinition) {}},
		{
			name:    "missing name",
			mutate:  func(d *NodeDefinition) { d.Name = "" },
			wantErr: "Name",
		},
		{
			name:    "missing category",
			mutate:  func(d *NodeDefinition) { d.Category = "" },
			wantErr: "Category",
		},
		{
			name:    "wrong abi version",
			mutate:  func(d *NodeDefinition) { d.ABIVersion = 2 },
			wantErr: "ABIVersion",
		},
		{
			name:    "unnamed pin",
			mutate:  func(d *NodeDefinition) { d.Pins[0].Name = "" },
			wantErr: "Name",
		},
		{
			name:    "bad pin type",
			mutate:  func(d *NodeDefinition) { d.Pins[0].PinType = "Bidirectional" },
			wantErr: "PinType",
		},
		{
			name:    "bad data type",
			mutate:  func(d *NodeDefinition) { d.Pins[0].DataType = "Float" },
			wantErr: "DataType",
		},
		{
			name: "duplicate pin",
			mutate: func(d *NodeDefinition) {
				d.AddPin(InputPin("exec_in", "In again", "", TypeExec))
			},
			wantErr: "duplicate pin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid
			def.Pins = append([]PinDefinition(nil), valid.Pins...)
			tt.mutate(&def)

			err := ValidateDefinition(def)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUnmarshalInputStruct(t *testing.T) {
	type request struct {
		URL     string `json:"url" validate:"required,url"`
		Retries int    `json:"retries" validate:"gte=0,lte=5"`
	}

	var ok request
	require.NoError(t, UnmarshalInputStruct(`{"url":"https://example.com","retries":2}`, &ok))
	assert.Equal(t, "https://example.com", ok.URL)
	assert.Equal(t, 2, ok.Retries)

	var missing request
	err := UnmarshalInputStruct(`{"retries":2}`, &missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	var malformed request
	err = UnmarshalInputStruct(`{"url":`, &malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
