package adapthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bodycomp/internal/token"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"wrong scheme", "Basic dXNlcjpwdw==", ""},
		{"scheme only", "Bearer", ""},
		{"extra space", "Bearer   abc", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if got := bearerToken(r); got != tc.want {
				t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestRequireAuthStatusCodes(t *testing.T) {
	tokens := token.NewIssuer([]byte("secret"), time.Hour)
	s := &Server{tokens: tokens}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil || claims.UserID != 8 {
			t.Errorf("claims not propagated: %+v", claims)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	handler := s.requireAuth(next)

	// No token at all.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", w.Code)
	}

	// Present but invalid.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tampered")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("invalid token: status = %d, want 403", w.Code)
	}

	// Valid.
	tok, err := tokens.Issue(8, "u8")
	if err != nil {
		t.Fatal(err)
	}
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("valid token: status = %d, want 204", w.Code)
	}
}
