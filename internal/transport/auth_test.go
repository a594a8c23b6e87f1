package transport

import (
	"net/http"
	"net/url"
	"testing"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "test-api-key")

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestBearerAuth tests Bearer token authentication.
func TestBearerAuth(t *testing.T) {
	auth := &BearerAuth{}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "ya29.token")

	expected := "Bearer ya29.token"
	if got := req.Header.Get("Authorization"); got != expected {
		t.Errorf("Expected Authorization header '%s', got '%s'", expected, got)
	}
}

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "x-goog-api-key"}
	req := &http.Request{
		Header: make(http.Header),
	}

	auth.Apply(req, "test-api-key")

	if got := req.Header.Get("x-goog-api-key"); got != "test-api-key" {
		t.Errorf("Expected x-goog-api-key header 'test-api-key', got '%s'", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}

// TestQueryAuth tests query parameter authentication.
func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "key"}

	reqURL, _ := url.Parse("https://sheets.googleapis.com/v4/spreadsheets/doc/values/Staff?majorDimension=ROWS")
	req := &http.Request{
		URL:    reqURL,
		Header: make(http.Header),
	}

	auth.Apply(req, "test-api-key")

	query := req.URL.Query()
	if query.Get("key") != "test-api-key" {
		t.Errorf("Expected query param 'key=test-api-key', got '%s'", req.URL.RawQuery)
	}
	if query.Get("majorDimension") != "ROWS" {
		t.Errorf("Expected existing param to be preserved, got '%s'", query.Get("majorDimension"))
	}

	// nil URL must not panic
	auth.Apply(&http.Request{Header: make(http.Header)}, "test-api-key")
}
