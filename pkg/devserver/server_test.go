package devserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/devserver"
)

const devDocument = `{
  "blueprint": [
    {"kind": "row", "columns": [
      {"size": 1, "elements": [
        {"kind": "input", "name": "email", "label": "Email", "required": true},
        {"kind": "submit", "name": "send", "label": "Send"}
      ]}
    ]}
  ]}`

func newServer(t *testing.T) (*devserver.Server, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(devDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	server, err := devserver.New(path)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server, path
}

func TestServeBlueprint(t *testing.T) {
	server, _ := newServer(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blueprint.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != devDocument {
		t.Error("served payload differs from the file on disk")
	}
}

func TestSubmissionValidationFailure(t *testing.T) {
	server, _ := newServer(t)

	body := strings.NewReader(`{"email": ""}`)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blueprint.json", body))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got, want := payload.Errors["email"], "Email is required"; got != want {
		t.Errorf("email error = %q, want %q", got, want)
	}
	if len(server.Submissions()) != 0 {
		t.Error("invalid submission was stored")
	}
}

func TestSubmissionAccepted(t *testing.T) {
	server, _ := newServer(t)

	body := strings.NewReader(`{"email": "a@b.com"}`)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blueprint.json", body))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.ID == "" {
		t.Fatal("accepted submission has no id")
	}

	stored := server.Submissions()
	if len(stored) != 1 {
		t.Fatalf("stored submissions = %d, want 1", len(stored))
	}
	if stored[0].ID != payload.ID {
		t.Errorf("stored id %q != response id %q", stored[0].ID, payload.ID)
	}
	if got := stored[0].Values["email"]; got != "a@b.com" {
		t.Errorf("stored email = %v", got)
	}
}

func TestSubmissionMalformedBody(t *testing.T) {
	server, _ := newServer(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blueprint.json", bytes.NewReader([]byte("{nope"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListSubmissions(t *testing.T) {
	server, _ := newServer(t)

	body := strings.NewReader(`{"email": "a@b.com"}`)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blueprint.json", body))

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submissions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listed []devserver.Submission
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed = %d, want 1", len(listed))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server, _ := newServer(t)

	body := strings.NewReader(`{"email": "a@b.com"}`)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blueprint.json", body))

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "formflow_devserver_submissions_total") {
		t.Error("submission counter missing from metrics exposition")
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	server, path := newServer(t)

	updated := strings.Replace(devDocument, `"label": "Email"`, `"label": "Work email"`, 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}
	if err := server.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blueprint.json", nil))
	if !strings.Contains(rec.Body.String(), "Work email") {
		t.Error("reload did not pick up the new document")
	}
}

func TestReloadKeepsPreviousOnParseFailure(t *testing.T) {
	server, path := newServer(t)

	if err := os.WriteFile(path, []byte(`{"blueprint": [{"kind": "grid"}]}`), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}
	if err := server.Reload(); err == nil {
		t.Fatal("expected reload error for invalid document")
	}

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blueprint.json", nil))
	if rec.Body.String() != devDocument {
		t.Error("failed reload replaced the live document")
	}
}

func TestNewRejectsInvalidBlueprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(`{"blueprint": [{"kind": "grid"}]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := devserver.New(path); err == nil {
		t.Fatal("expected error for invalid blueprint")
	}
}
