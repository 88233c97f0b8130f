package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"enveloped object", `{"data":{"a":1}}`, `{"a":1}`},
		{"enveloped array", `{"data":[1,2]}`, `[1,2]`},
		{"null data falls through", `{"data":null}`, `{"data":null}`},
		{"plain object", `{"token":"t"}`, `{"token":"t"}`},
		{"plain array", `[1,2]`, `[1,2]`},
		{"not json", `plain text`, `plain text`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(unwrapEnvelope([]byte(tt.body))))
		})
	}
}

func TestUnwrapEnvelope_Empty(t *testing.T) {
	assert.Nil(t, unwrapEnvelope(nil))
	assert.Nil(t, unwrapEnvelope([]byte{}))
}
