package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	return New(WithBaseURL(base), WithHTTPClient(srv.Client()))
}

func TestListDocuments(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/document/all" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected json accept header, got %q", got)
		}
		_, _ = io.WriteString(w, `[{"id":"a1","title":"Invoice","mime":"application/pdf","size":2048,
			"tenantId":"t1","createdAt":"2025-01-02T10:00:00Z","updatedAt":"2025-01-03T10:00:00Z","origin":null,"deletedAt":null}]`)
	}))

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	doc := docs[0]
	if doc.ID != "a1" || doc.Title != "Invoice" || doc.Size != 2048 || doc.TenantID != "t1" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Origin != nil || doc.DeletedAt != nil {
		t.Fatalf("expected nil optional fields, got %+v", doc)
	}
	if doc.CreatedAt.Year() != 2025 {
		t.Fatalf("createdAt not decoded: %v", doc.CreatedAt)
	}
}

func TestListDocumentsStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend offline", http.StatusBadGateway)
	}))

	_, err := client.ListDocuments(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
	if statusErr.Error() != "HTTP 502: backend offline" {
		t.Fatalf("unexpected message %q", statusErr.Error())
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"a1"}]`)
	}))

	if _, err := client.GetDocument(context.Background(), "zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	doc, err := client.GetDocument(context.Background(), "a1")
	if err != nil || doc.ID != "a1" {
		t.Fatalf("GetDocument(a1) = %+v, %v", doc, err)
	}
}

func TestUpdateIndexSendsPatch(t *testing.T) {
	var got IndexData
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/document/a1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UpdateIndex(context.Background(), "a1", IndexData{Title: "New", Type: "Rechnung"})
	if err != nil {
		t.Fatalf("UpdateIndex() error = %v", err)
	}
	if got.Title != "New" || got.Type != "Rechnung" || got.Tags == nil {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestHeadReportsStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if r.URL.Path == "/present" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	ok, err := client.Head(context.Background(), "/present")
	if err != nil || !ok {
		t.Fatalf("Head(/present) = %v, %v", ok, err)
	}
	ok, err = client.Head(context.Background(), "/missing")
	if err != nil || ok {
		t.Fatalf("Head(/missing) = %v, %v", ok, err)
	}
}

func TestURLs(t *testing.T) {
	base, _ := url.Parse("http://localhost:9900")
	client := New(WithBaseURL(base))

	if got := client.StreamURL("abc"); got != "http://localhost:9900/document/stream/abc" {
		t.Fatalf("StreamURL = %q", got)
	}
	if got := client.ShareURL("abc", "tok"); got != "http://localhost:9900/share/once/abc-tok" {
		t.Fatalf("ShareURL = %q", got)
	}
}
