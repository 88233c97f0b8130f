package client

import (
	"encoding/json"
	"net/http"
)

// Response is the normalized success shape of every call: the unwrapped JSON
// payload plus the HTTP status and headers of the underlying response.
type Response struct {
	Data   json.RawMessage
	Status int
	Header http.Header
}

// unwrapEnvelope extracts the payload from a conventional {"data": ...}
// envelope. Bodies that are not objects, carry no "data" key, or are not
// valid JSON at all pass through unchanged.
func unwrapEnvelope(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return json.RawMessage(body)
}

// errorBody is the conventional error envelope servers reply with.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
