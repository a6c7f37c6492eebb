package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bitnames/authverify/internal/testutil"
)

func TestLookup(t *testing.T) {
	server := testutil.RegistryServer(t, map[string]string{
		"alice.id": "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
	})

	client := NewHTTPClient(server.URL)
	rec, err := client.Lookup(context.Background(), "alice.id")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Address != "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH" {
		t.Errorf("Address = %q", rec.Address)
	}
}

func TestLookupNameNotFound(t *testing.T) {
	server := testutil.RegistryServer(t, nil)

	client := NewHTTPClient(server.URL)
	_, err := client.Lookup(context.Background(), "missing.id")
	if !errors.Is(err, ErrNameNotFound) {
		t.Fatalf("expected ErrNameNotFound, got %v", err)
	}
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewHTTPClient(server.URL)
	_, err := client.Lookup(context.Background(), "alice.id")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for 500, got %v", err)
	}
}

func TestLookupBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	client := NewHTTPClient(server.URL)
	_, err := client.Lookup(context.Background(), "alice.id")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for bad body, got %v", err)
	}
}

func TestLookupTransportError(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:0")
	_, err := client.Lookup(context.Background(), "alice.id")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for unreachable registry, got %v", err)
	}
}

func TestLookupSendsUserAgent(t *testing.T) {
	var gotUA, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":"1ABC","status":"registered"}`))
	}))
	t.Cleanup(server.Close)

	client := NewHTTPClient(server.URL)
	if _, err := client.Lookup(context.Background(), "alice.id"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
	if gotPath != "/v1/names/alice.id" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestNewHTTPClientDefaultBaseURL(t *testing.T) {
	client := NewHTTPClient("")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
}
