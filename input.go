package sdk

import "github.com/TM9657/flow-like-sdk-go/jsonlite"

// ExecutionInput is the envelope the host hands to the run export: pin
// values as raw JSON text plus the run's identity and delivery settings.
type ExecutionInput struct {
	Inputs      map[string]string `json:"inputs"`
	NodeID      string            `json:"node_id"`
	NodeName    string            `json:"node_name"`
	RunID       string            `json:"run_id"`
	AppID       string            `json:"app_id"`
	BoardID     string            `json:"board_id"`
	UserID      string            `json:"user_id"`
	StreamState bool              `json:"stream_state"`
	LogLevel    int32             `json:"log_level"`
}

// ParseExecutionInput decodes the run envelope. Missing fields take their
// zero values; malformed input yields an envelope with empty inputs rather
// than an error, keeping the export total.
func ParseExecutionInput(doc string) ExecutionInput {
	in := ExecutionInput{Inputs: make(map[string]string)}
	jsonlite.NewDecoder(doc).EachField(func(key, raw string) bool {
		switch key {
		case "inputs":
			in.Inputs = jsonlite.ParseObject(raw)
		case "node_id":
			in.NodeID = jsonlite.Unquote(raw)
		case "node_name":
			in.NodeName = jsonlite.Unquote(raw)
		case "run_id":
			in.RunID = jsonlite.Unquote(raw)
		case "app_id":
			in.AppID = jsonlite.Unquote(raw)
		case "board_id":
			in.BoardID = jsonlite.Unquote(raw)
		case "user_id":
			in.UserID = jsonlite.Unquote(raw)
		case "stream_state":
			in.StreamState = raw == "true"
		case "log_level":
			in.LogLevel = int32(jsonlite.ParseLenientInt(raw))
		}
		return true
	})
	if in.Inputs == nil {
		in.Inputs = make(map[string]string)
	}
	return in
}
