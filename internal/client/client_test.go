package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c := New("", "")
		if c.baseURL != "http://localhost:8080" {
			t.Errorf("expected default baseURL, got %s", c.baseURL)
		}
		if c.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient to be used")
		}
		if c.limiter != nil {
			t.Error("expected no limiter by default")
		}
	})

	t.Run("With Options", func(t *testing.T) {
		custom := &http.Client{}
		c := New("http://example.com", "tok", WithHTTPClient(custom), WithRateLimit(5))
		if c.httpClient != custom {
			t.Error("expected custom client to be used")
		}
		if c.limiter == nil {
			t.Error("expected limiter to be configured")
		}
	})
}

func TestGetBeats(t *testing.T) {
	partID := uuid.New()
	docID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET method, got %s", r.Method)
		}
		wantPath := "/content/by-part/" + partID.String()
		if r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		if got := r.URL.Query().Get("kind"); got != "beat" {
			t.Errorf("expected kind=beat, got %s", got)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"versions": []map[string]any{
				{"versionNo": 2, "selected": true, "edited": false, "items": []any{}, "docId": docID.String()},
				{"versionNo": 1, "selected": false, "edited": true, "items": []any{}, "docId": uuid.New().String()},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	groups, err := c.GetBeats(context.Background(), partID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(groups))
	}
	if !groups[0].Selected || groups[0].VersionNo != 2 {
		t.Errorf("expected selected v2 first, got %+v", groups[0])
	}
	if groups[0].DocID != docID {
		t.Errorf("expected docId round-trip, got %s", groups[0].DocID)
	}
}

func TestSelectContent(t *testing.T) {
	docID := uuid.New()

	t.Run("OK", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST method, got %s", r.Method)
			}
			wantPath := "/content/" + docID.String() + "/select"
			if r.URL.Path != wantPath {
				t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"id": docID.String()})
		}))
		defer server.Close()

		c := New(server.URL, "tok")
		if err := c.SelectContent(context.Background(), docID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Unknown ID Surfaces Envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "not found", "code": "not_found"},
			})
		}))
		defer server.Close()

		c := New(server.URL, "tok")
		err := c.SelectContent(context.Background(), docID)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "not_found") {
			t.Errorf("expected envelope code in error, got %v", err)
		}
	})
}

func TestCreateContent(t *testing.T) {
	partID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PartID  uuid.UUID `json:"part_id"`
			Kind    string    `json:"kind"`
			Content string    `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.PartID != partID || req.Kind != "beat" {
			t.Errorf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":       uuid.New().String(),
			"kind":     "beat",
			"metadata": map[string]any{"versionNo": 3, "edited": false, "selected": true},
		})
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	ref, err := c.CreateContent(context.Background(), partID, "beat", `[{"beat_number":1}]`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ref.Metadata.VersionNo != 3 || !ref.Metadata.Selected {
		t.Errorf("expected metadata v3 selected, got %+v", ref.Metadata)
	}
}

func TestStaleDiscard(t *testing.T) {
	t.Run("Ticket Bookkeeping", func(t *testing.T) {
		seq := newFetchSeq()
		first := seq.begin("beats:p1")
		second := seq.begin("beats:p1")
		if seq.isCurrent("beats:p1", first) {
			t.Error("expected first ticket to be stale after second began")
		}
		if !seq.isCurrent("beats:p1", second) {
			t.Error("expected second ticket to be current")
		}
		other := seq.begin("shots:p1")
		if !seq.isCurrent("shots:p1", other) {
			t.Error("expected independent keys to not interfere")
		}
		if !seq.isCurrent("beats:p1", second) {
			t.Error("expected other-key begin to leave beats ticket current")
		}
	})

	t.Run("Overlapping Fetches", func(t *testing.T) {
		partID := uuid.New()
		release := make(chan struct{})
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				<-release
			}
			json.NewEncoder(w).Encode(map[string]any{"versions": []any{}})
		}))
		defer server.Close()

		c := New(server.URL, "tok")
		firstDone := make(chan error, 1)
		go func() {
			_, err := c.GetShots(context.Background(), partID)
			firstDone <- err
		}()

		// Wait for the first fetch to be in flight, then start a newer one.
		for c.seq.isCurrent("shot:"+partID.String(), 0) {
			time.Sleep(time.Millisecond)
		}
		if _, err := c.GetShots(context.Background(), partID); err != nil {
			t.Fatalf("expected newest fetch to succeed, got %v", err)
		}
		close(release)
		if err := <-firstDone; err != ErrStale {
			t.Fatalf("expected ErrStale for the older fetch, got %v", err)
		}
	})
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetPartStudio(ctx, uuid.New()); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
