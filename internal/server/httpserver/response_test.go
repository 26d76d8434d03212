package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{common.ErrAlreadyExists, http.StatusBadRequest, "already exists"},
		{common.ErrInvalidCredentials, http.StatusBadRequest, "invalid credentials"},
		{common.ErrDuplicateBook, http.StatusConflict, common.ErrDuplicateBook.Error()},
		{common.ErrNoToken, http.StatusUnauthorized, "no token provided"},
		{fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrSignatureInvalid), http.StatusUnauthorized, "invalid token"},
		{fmt.Errorf("%w: exp", common.ErrTokenExpired), http.StatusUnauthorized, "token expired"},
		{common.ErrIdentityNotFound, http.StatusUnauthorized, "user not found"},
		{common.ErrForbidden, http.StatusForbidden, "forbidden"},
		{common.ErrorNotFound, http.StatusNotFound, "not found"},
		{common.ErrMissingSecret, http.StatusInternalServerError, internalMessage},
		{errors.New("pq: relation does not exist"), http.StatusInternalServerError, internalMessage},
	}
	for _, tc := range cases {
		status, msg := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}

	status, msg := statusFor(fmt.Errorf("%w: title: cannot be blank.", common.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "title: cannot be blank")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Rating int `json:"rating"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"rating": 4}`},
		{name: "wrong type", body: `{"rating": 4.5}`, wantErr: "validation error: invalid json"},
		{name: "unknown field", body: `{"stars": 4}`, wantErr: "validation error: invalid json"},
		{name: "too large", body: `{"rating": 4, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`, wantErr: "validation error: request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got payload
			err := decodeJSON(httptest.NewRecorder(), r, &got)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, 4, got.Rating)
				return
			}
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.NotContains(t, err.Error(), "Go struct field")
		})
	}
}
