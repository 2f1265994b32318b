package update

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
)

// FilenameFromURL returns the segment of url after the last slash, or the
// whole url when it has none.
func FilenameFromURL(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// ExtensionFromURL returns the suffix of url from its last dot, dot
// included, or the whole url when it has none.
func ExtensionFromURL(url string) string {
	if i := strings.LastIndex(url, "."); i >= 0 {
		return url[i:]
	}
	return url
}

// progressGate decides which completion percentages are published.
// Published values are strictly increasing, and a transfer that opens at
// 100 stays silent.
type progressGate struct {
	last int
}

func (g *progressGate) advance(percent int) bool {
	if g.last < percent && !(g.last == 0 && percent == 100) {
		g.last = percent
		return true
	}
	return false
}

// downloadFile fetches req.URL into dest. The body is staged next to dest
// under a pid-tagged name and moved into place once complete. On failure
// the returned path is empty and any staging file is left where it was.
func downloadFile(ctx context.Context, client *http.Client, req DownloadRequest, dest string, cancel *atomic.Bool, publish func(percent int)) (string, error) {
	if dest == "" {
		return "", ErrEmptyDestination
	}

	gate := &progressGate{}
	body, err := fetch(ctx, client, req.URL, maxDownloadBytes, cancel, func(p Progress) {
		percent := p.Percent()
		if gate.advance(percent) && publish != nil {
			publish(percent)
		}
	})
	if err != nil {
		return "", err
	}

	tmp := fmt.Sprintf("%s.%d.download", dest, os.Getpid())
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return "", &StagingError{Temp: tmp, Dest: dest, Err: err}
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", &StagingError{Temp: tmp, Dest: dest, Err: err}
	}

	return dest, nil
}
