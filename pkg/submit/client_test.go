package submit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/submit"
)

func TestSubmitSendsJSONPost(t *testing.T) {
	var (
		method string
		accept string
		ctype  string
		body   map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		accept = r.Header.Get("Accept")
		ctype = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := submit.NewClient()
	err := client.Submit(context.Background(), server.URL, map[string]any{
		"email":     "a@b.com",
		"subscribe": true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if method != http.MethodPost {
		t.Errorf("method = %q, want POST", method)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q", accept)
	}
	if ctype != "application/json" {
		t.Errorf("Content-Type = %q", ctype)
	}
	want := map[string]any{"email": "a@b.com", "subscribe": true}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitAcceptsAny2xx(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		err := submit.NewClient().Submit(context.Background(), server.URL, nil)
		server.Close()
		if err != nil {
			t.Errorf("status %d: submit returned %v", status, err)
		}
	}
}

func TestSubmitRejectsNon2xx(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		err := submit.NewClient().Submit(context.Background(), server.URL, nil)
		server.Close()
		if err == nil {
			t.Errorf("status %d: submit succeeded", status)
			continue
		}
		if !strings.Contains(err.Error(), "endpoint rejected request") {
			t.Errorf("status %d: err = %v", status, err)
		}
	}
}

func TestSubmitRequiresEndpoint(t *testing.T) {
	if err := submit.NewClient().Submit(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestSubmitHonoursContextCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if err := submit.NewClient().Submit(ctx, server.URL, nil); err == nil {
		t.Fatal("expected error after context cancellation")
	}
}
