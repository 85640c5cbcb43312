package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string   `json:"name" validate:"required,max=5"`
	IDs   []string `json:"ids" validate:"omitempty,dive,uuid"`
	Extra string   `json:"extra"`
}

func (s sampleRequest) Validate() []string {
	if s.Extra == "bad" {
		return []string{"extra must not be bad"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantSubstr string
	}{
		{name: "valid", body: `{"name":"abc","ids":["3f2504e0-4f89-11d3-9a0c-0305e82c3301"]}`, wantOK: true},
		{name: "malformed json", body: `{`, wantSubstr: "unexpected EOF"},
		{name: "unknown field", body: `{"name":"abc","nope":1}`, wantSubstr: "unknown field"},
		{name: "required uses json name", body: `{}`, wantSubstr: "name is required"},
		{name: "max length", body: `{"name":"abcdefg"}`, wantSubstr: "name must be at most 5 characters"},
		{name: "uuid dive", body: `{"name":"abc","ids":["x"]}`, wantSubstr: "ids[0] must be a UUID"},
		{name: "validator hook", body: `{"name":"abc","extra":"bad"}`, wantSubstr: "extra must not be bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://test/x", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest sampleRequest
			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, ErrCodeBadRequest, envelope.Error.Code)
			assert.Contains(t, envelope.Error.Message, tt.wantSubstr)
		})
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.False(t, ValidID("ev-1"))
	assert.False(t, ValidID("{3f2504e0-4f89-11d3-9a0c-0305e82c3301}"))
	assert.False(t, ValidID(""))
}
