package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/owstat/internal/model"
)

var testPlayer = model.Player{Tag: "Clovis-1467", Platform: "pc", Region: "us"}

func TestFetchDecodesDocument(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"name":"Clovis#1467","quickPlayStats":{"careerStats":{}}}`)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL)
	doc, err := client.Fetch(context.Background(), testPlayer)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotPath != "/pc/us/Clovis-1467/complete" {
		t.Fatalf("unexpected request path: %s", gotPath)
	}
	if doc["name"] != "Clovis#1467" {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestFetchUnknownPlayer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL)
	if _, err := client.Fetch(context.Background(), testPlayer); err == nil {
		t.Fatalf("expected error for unknown player")
	} else if !strings.Contains(err.Error(), "no profile found") {
		t.Fatalf("expected a friendly not-found message, got: %v", err)
	}
}

func TestFetchPrivateProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"Clovis#1467","private":true}`)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint(srv.URL)
	doc, err := client.Fetch(context.Background(), testPlayer)
	if !errors.Is(err, ErrPrivateProfile) {
		t.Fatalf("expected ErrPrivateProfile, got %v", err)
	}
	if doc == nil {
		t.Fatalf("expected the document alongside the private error")
	}
}

func TestRetrieverPrefersCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"name":"Clovis#1467"}`)
	}))
	defer srv.Close()

	store, err := OpenStore(filepath.Join(t.TempDir(), "owstat.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		_ = store.Close()
	}()

	retriever := NewRetriever(store, NewClientWithEndpoint(srv.URL))
	ctx := context.Background()

	_, source, err := retriever.Get(ctx, testPlayer)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if source != SourceNetwork {
		t.Fatalf("expected first get from the api, got %s", source)
	}

	_, source, err = retriever.Get(ctx, testPlayer)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if source != SourceCache {
		t.Fatalf("expected second get from cache, got %s", source)
	}
	if hits != 1 {
		t.Fatalf("expected exactly one api hit, got %d", hits)
	}
}
