package imagecheck

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidRequiresImageContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Fatalf("probe must be HEAD, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/cat.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.WriteHeader(http.StatusOK)
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusOK)
		case "/missing.jpg":
			w.WriteHeader(http.StatusNotFound)
		default:
			// 无 Content-Type 头
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := NewHTTPChecker()

	if !c.Valid(srv.URL + "/cat.jpg") {
		t.Fatalf("200 + image/jpeg should be valid")
	}
	if c.Valid(srv.URL + "/page.html") {
		t.Fatalf("non-image content type should be invalid")
	}
	if c.Valid(srv.URL + "/missing.jpg") {
		t.Fatalf("404 should be invalid")
	}
	if c.Valid(srv.URL + "/no-header") {
		t.Fatalf("missing content type should be invalid")
	}
}

func TestValidEmptyAndUnreachable(t *testing.T) {
	c := NewHTTPChecker()

	if c.Valid("") {
		t.Fatalf("empty URL should be invalid without a network call")
	}
	if c.Valid("http://127.0.0.1:0/nope.jpg") {
		t.Fatalf("unreachable host should be invalid")
	}
}
