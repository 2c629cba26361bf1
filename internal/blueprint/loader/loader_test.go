package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formflow/internal/blueprint/loader"
	"github.com/goliatone/go-formflow/pkg/blueprint"
)

const docPayload = `{"blueprint": []}`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(docPayload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(blueprint.NewLoaderOptions())
	doc, err := l.Load(context.Background(), blueprint.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != docPayload {
		t.Errorf("payload = %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Errorf("location = %q", doc.Location())
	}
}

func TestLoadFromFS(t *testing.T) {
	files := fstest.MapFS{
		"forms/contact.json": {Data: []byte(docPayload)},
	}
	l := loader.New(blueprint.NewLoaderOptions(blueprint.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), blueprint.SourceFromFS("forms/contact.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != docPayload {
		t.Errorf("payload = %q", doc.Raw())
	}
}

func TestLoadFromFSRequiresFileSystem(t *testing.T) {
	l := loader.New(blueprint.NewLoaderOptions())
	if _, err := l.Load(context.Background(), blueprint.SourceFromFS("forms/contact.json")); err == nil {
		t.Fatal("expected error when no fs.FS configured")
	}
}

func TestLoadFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(docPayload))
	}))
	defer server.Close()

	l := loader.New(blueprint.NewLoaderOptions(blueprint.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), blueprint.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != docPayload {
		t.Errorf("payload = %q", doc.Raw())
	}
	if doc.Source().Kind() != blueprint.SourceKindURL {
		t.Errorf("source kind = %v", doc.Source().Kind())
	}
}

func TestLoadFromURLRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	l := loader.New(blueprint.NewLoaderOptions(blueprint.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), blueprint.SourceFromURL(server.URL)); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestLoadFromURLWithDefaultSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(docPayload))
	}))
	defer server.Close()

	// No explicit client; WithDefaultSources turns the built-in one on.
	l := loader.New(blueprint.NewLoaderOptions(blueprint.WithDefaultSources()))
	doc, err := l.Load(context.Background(), blueprint.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != docPayload {
		t.Errorf("payload = %q", doc.Raw())
	}
}

func TestLoadFromURLDisabledByDefault(t *testing.T) {
	l := loader.New(blueprint.NewLoaderOptions())
	_, err := l.Load(context.Background(), blueprint.SourceFromURL("https://example.test/form.json"))
	if err == nil {
		t.Fatal("expected error when http support is disabled")
	}
}

func TestLoadRejectsNilSource(t *testing.T) {
	l := loader.New(blueprint.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
