package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

const (
	// maxDownloadBytes is the upper bound on artifact downloads (70 MiB).
	maxDownloadBytes = 70 << 20

	// maxVersionBytes is the upper bound on version descriptor bodies.
	// Version files are expected to be tiny.
	maxVersionBytes = 256

	// fetchChunkBytes is the read granularity. The cancel flag is polled
	// between chunks, so it also bounds cancellation latency.
	fetchChunkBytes = 32 << 10
)

// fetch performs a size-capped HTTP GET. onChunk, when non-nil, receives a
// Progress after every chunk. The cancel flag, when non-nil, is polled
// before each read; once set, the transfer stops with ErrCanceled.
func fetch(ctx context.Context, client *http.Client, url string, sizeLimit int64, cancel *atomic.Bool, onChunk func(Progress)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		if canceled(cancel) {
			return nil, ErrCanceled
		}
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	total := resp.ContentLength
	if total > sizeLimit {
		return nil, &TransportError{
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("size %d exceeds limit of %d bytes", total, sizeLimit),
		}
	}
	if total < 0 {
		total = 0
	}

	body := make([]byte, 0, total)
	buf := make([]byte, fetchChunkBytes)
	for {
		if canceled(cancel) {
			return nil, ErrCanceled
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
			if int64(len(body)) > sizeLimit {
				return nil, &TransportError{
					URL:    url,
					Status: resp.StatusCode,
					Err:    fmt.Errorf("body exceeds limit of %d bytes", sizeLimit),
				}
			}
			if onChunk != nil {
				onChunk(Progress{Downloaded: int64(len(body)), Total: total})
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if canceled(cancel) {
				return nil, ErrCanceled
			}
			return nil, &TransportError{URL: url, Status: resp.StatusCode, Err: err}
		}
	}

	return body, nil
}

func canceled(flag *atomic.Bool) bool {
	return flag != nil && flag.Load()
}
