package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// DefaultRequestTimeout caps HTTP fetches when the caller supplies neither a
// client timeout nor an explicit request timeout.
const DefaultRequestTimeout = 15 * time.Second

// Loader implements blueprint.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ blueprint.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options blueprint.LoaderOptions) *Loader {
	timeout := options.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a
// blueprint.Document.
func (l *Loader) Load(ctx context.Context, src blueprint.Source) (blueprint.Document, error) {
	if src == nil {
		return blueprint.Document{}, errors.New("blueprint loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case blueprint.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case blueprint.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case blueprint.SourceKindURL:
		if !l.allowHTTP {
			return blueprint.Document{}, errors.New("blueprint loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("blueprint loader: unsupported source kind")
	}
	if err != nil {
		return blueprint.Document{}, err
	}

	return blueprint.NewDocument(src, data)
}
