package jira

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientDisabledWithoutCredentials(t *testing.T) {
	client := NewClient(Config{})
	if client.Enabled() {
		t.Fatal("expected client without credentials to be disabled")
	}
	if _, err := client.Projects(context.Background()); err == nil {
		t.Fatal("expected error from disabled client")
	}
}

func TestClientSendsBasicAuth(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"key":"OPS"}]`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Email: "bot@example.com", APIToken: "token123"})
	resp, err := client.Projects(context.Background())
	if err != nil {
		t.Fatalf("projects failed: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if gotPath != "/rest/api/3/project" {
		t.Fatalf("unexpected path %s", gotPath)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("bot@example.com:token123"))
	if gotAuth != want {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestClientRelaysUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages":["No project could be found"]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Email: "bot@example.com", APIToken: "token123"})
	resp, err := client.Project(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Fatalf("expected upstream 404 to be relayed, got %d", resp.Status)
	}
	if len(resp.Body) == 0 {
		t.Fatal("expected upstream body to be relayed")
	}
}

func TestUserLookupByAccountID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("accountId") != "abc123" {
			t.Errorf("unexpected accountId %q", r.URL.Query().Get("accountId"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accountId":"abc123","displayName":"Jane Doe","emailAddress":"jane@example.com"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Email: "bot@example.com", APIToken: "token123"})
	user, err := client.User(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if user.DisplayName != "Jane Doe" || user.EmailAddress != "jane@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestUserLookupRejectsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Email: "bot@example.com", APIToken: "token123"})
	if _, err := client.User(context.Background(), "missing"); err == nil {
		t.Fatal("expected error on upstream 404")
	}
}

func TestSearchUsersParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "jane" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"accountId":"abc123","displayName":"Jane Doe","emailAddress":"jane@example.com"}]`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Email: "bot@example.com", APIToken: "token123"})
	users, err := client.SearchUsers(context.Background(), "jane")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(users) != 1 || users[0].AccountID != "abc123" || users[0].DisplayName != "Jane Doe" {
		t.Fatalf("unexpected users %+v", users)
	}
}
