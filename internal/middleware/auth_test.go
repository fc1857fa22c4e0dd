package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devfolio/internal/domain"
	"devfolio/internal/httputil"
)

type staticVerifier struct {
	userID int64
	err    error
}

func (v *staticVerifier) Verify(token string) (int64, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.userID, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *staticVerifier
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer good-token",
			verifier:   &staticVerifier{userID: 42},
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
		{
			name:       "missing header",
			header:     "",
			verifier:   &staticVerifier{userID: 42},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			verifier:   &staticVerifier{userID: 42},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token after scheme",
			header:     "Bearer ",
			verifier:   &staticVerifier{userID: 42},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects token",
			header:     "Bearer bad-token",
			verifier:   &staticVerifier{err: domain.ErrInvalidOperation},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var handlerCalled bool

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				gotUserID, _ = httputil.GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/favorites/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				if handlerCalled {
					t.Error("handler was called despite the rejected request")
				}
				return
			}

			if gotUserID != tt.wantUserID {
				t.Errorf("user id in context = %d, want %d", gotUserID, tt.wantUserID)
			}
		})
	}
}
