package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		body    string
		wantErr string
	}{
		{name: "create minimal", payload: PayloadCreate, body: `{"name":"My CV"}`},
		{name: "create full", payload: PayloadCreate, body: `{"name":"My CV","ownerId":"u1","data":{"personalInfo":{"name":"Jane"},"skills":{"frontend":["React"]},"experience":[{"title":"Eng","bullets":["a"]}]}}`},
		{name: "create missing name", payload: PayloadCreate, body: `{"data":{}}`, wantErr: "name"},
		{name: "create empty name", payload: PayloadCreate, body: `{"name":""}`, wantErr: "name"},
		{name: "unknown skill category", payload: PayloadCreate, body: `{"name":"x","data":{"skills":{"cooking":["pasta"]}}}`, wantErr: "cooking"},
		{name: "bullet must be string", payload: PayloadUpdate, body: `{"name":"x","data":{"projects":[{"bullets":[1]}]}}`, wantErr: "schema validation failed"},
		{name: "export requires cvData", payload: PayloadExport, body: `{"template":"modern"}`, wantErr: "cvData"},
		{name: "export ok", payload: PayloadExport, body: `{"cvData":{"summary":"hi"}}`},
		{name: "not json", payload: PayloadDocument, body: `{`, wantErr: "malformed JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.payload, []byte(tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePayloadUnknownDefinition(t *testing.T) {
	err := ValidatePayload(Payload("nope"), []byte(`{}`))
	require.Error(t, err)
}

func TestDecodeDocument(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"personalInfo":{"name":"Jane Doe"},"experience":[{"title":"Eng"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", d.PersonalInfo.Name)
	assert.Equal(t, []string{}, d.Experience[0].Bullets)
	assert.Equal(t, []string{}, d.Skills.Frontend)

	_, err = DecodeDocument([]byte(`{"summary":5}`))
	assert.Error(t, err)
}
