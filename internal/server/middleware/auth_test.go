package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
}

type stubClaims struct {
	userID uuid.UUID
}

func (s *stubClaims) GetUserID() uuid.UUID { return s.userID }

func (s *stubValidator) ValidateToken(_ string) (UserIDGetter, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &stubClaims{userID: s.userID}, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	var gotUserID uuid.UUID
	handler := AuthMiddleware(&stubValidator{userID: userID})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := GetUserID(r)
			require.NoError(t, err)
			gotUserID = id
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest("POST", "/admin/backfill-embeddings", nil)
	r.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"bearer without token", "Bearer "},
		{"too many parts", "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(&stubValidator{userID: uuid.New()})(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					t.Fatal("handler should not be reached")
				}))

			r := httptest.NewRequest("POST", "/admin/backfill-embeddings", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{err: errors.New("bad token")})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	r := httptest.NewRequest("POST", "/admin/backfill-embeddings", nil)
	r.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{userID: uuid.New()})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest("POST", "/admin/backfill-embeddings", nil)
	r.Header.Set("Authorization", "bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := GetUserID(r)
	assert.Error(t, err)
}
