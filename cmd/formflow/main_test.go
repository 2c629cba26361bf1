package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

const cliDocument = `{
  "blueprint": [
    {"kind": "row", "columns": [
      {"size": 1, "elements": [
        {"kind": "input", "name": "email", "label": "Email", "required": true},
        {"kind": "submit", "name": "send", "label": "Send"}
      ]}
    ]}
  ]}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderCommandFromURLSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(cliDocument))
	}))
	defer server.Close()

	out, err := runCLI(t, "render", server.URL)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `name="email"`) {
		t.Errorf("rendered form missing field:\n%s", out)
	}
	// A URL-sourced blueprint submits back to its own URL.
	if !strings.Contains(out, `action="`+server.URL+`"`) {
		t.Errorf("rendered form missing derived endpoint:\n%s", out)
	}
}

func TestRenderCommandFromFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(cliDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := runCLI(t, "render", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `name="email"`) {
		t.Errorf("rendered form missing field:\n%s", out)
	}
}

func TestOrchestratorOptionsEnableHTTPForURLSources(t *testing.T) {
	if opts := orchestratorOptions(blueprint.SourceFromURL("https://example.test/form.json")); len(opts) == 0 {
		t.Error("URL source produced no loader options")
	}
	if opts := orchestratorOptions(blueprint.SourceFromFile("form.json")); len(opts) != 0 {
		t.Error("file source unexpectedly enabled HTTP loading")
	}
	if opts := orchestratorOptions(nil); len(opts) != 0 {
		t.Error("nil source unexpectedly enabled HTTP loading")
	}
}

func TestLintCommandReportsIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	doc := `{"blueprint": [{"kind": "block", "elements": [{"kind": "slider"}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := runCLI(t, "lint", path)
	if err == nil {
		t.Fatal("expected lint to fail for broken document")
	}
	if !strings.Contains(out, "unknown element kind") {
		t.Errorf("lint output missing issue:\n%s", out)
	}
}
