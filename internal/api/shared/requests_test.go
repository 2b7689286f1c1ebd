package shared

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Regex *string `json:"regex"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errIs       error
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"regex": "foo.*"}`,
		},
		{
			name:        "trailing whitespace",
			requestBody: "{\"regex\": \"foo\"}\n\n",
		},
		{
			name:        "invalid json",
			requestBody: `{"regex": "foo",}`, // trailing comma
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errIs:       io.EOF,
		},
		{
			name:        "wrong type",
			requestBody: `{"regex": 42}`,
			wantErr:     true,
			errContains: "cannot unmarshal number",
		},
		{
			name:        "two documents",
			requestBody: `{"regex": "a"}{"regex": "b"}`,
			wantErr:     true,
			errIs:       ErrTrailingData,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/known-issues", strings.NewReader(tc.requestBody))

			var target decodeTarget
			err := DecodeJSON(req, &target)

			if !tc.wantErr {
				require.NoError(t, err)
				require.NotNil(t, target.Regex)
				return
			}
			require.Error(t, err)
			if tc.errIs != nil {
				assert.True(t, errors.Is(err, tc.errIs), "got %v", err)
			}
			if tc.errContains != "" {
				assert.Contains(t, err.Error(), tc.errContains)
			}
		})
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	body := `{"regex": "` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/known-issues", strings.NewReader(body))

	var target decodeTarget
	err := DecodeJSON(req, &target)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, err, &maxErr)
}

// Mock for http.Request that will return a read error
type errorReader struct{}

func (er errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target struct{}
	err := DecodeJSON(req, &target)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

// Mock validator interface
type ValidatableStruct struct {
	Name string `validate:"required"`
}

func (v *ValidatableStruct) Validate() error {
	if v.Name == "invalid" {
		return &validator.ValidationErrors{}
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{
			name:    "valid request with validator",
			req:     &ValidatableStruct{Name: "test"},
			wantErr: false,
		},
		{
			name:    "invalid request with validator",
			req:     &ValidatableStruct{Name: "invalid"},
			wantErr: true,
		},
		{
			name: "struct tags satisfied",
			req: &struct {
				Regex string `validate:"required"`
			}{"foo"},
			wantErr: false,
		},
		{
			name: "struct tags violated",
			req: &struct {
				Regex string `validate:"required"`
			}{""},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
