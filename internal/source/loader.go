package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Loader reads document bytes from files or URLs.
type Loader interface {
	Load(ctx context.Context, src Source) ([]byte, error)
}

type loaderImpl struct {
	http *http.Client
}

// NewLoader returns a loader. A nil client means http.DefaultClient.
func NewLoader(client *http.Client) Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &loaderImpl{http: client}
}

func (l *loaderImpl) Load(ctx context.Context, src Source) ([]byte, error) {
	if src.Location == "" {
		return nil, errors.New("source location is required")
	}
	switch src.Kind {
	case KindFile:
		return loadFile(ctx, src.Location)
	case KindURL:
		return loadHTTP(ctx, l.http, src.Location)
	default:
		return nil, fmt.Errorf("unsupported source kind %d", src.Kind)
	}
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// loadHTTP performs exactly one GET; there are no retries.
func loadHTTP(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
