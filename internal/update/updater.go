package update

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Updater coordinates background version checks and artifact downloads.
// At most one task runs at a time; starting a new one cancels and joins
// the previous one first.
type Updater struct {
	client   *http.Client
	launcher Launcher
	logger   *log.Logger
	events   *queue
	destDir  string

	queueSize int

	mu       sync.Mutex // serializes start, join and close
	userDest string
	closed   bool

	cur    atomic.Pointer[task] // task in flight, nil when idle
	cancel atomic.Bool          // read by the running task between chunks
}

// task is one background run.
type task struct {
	id    string
	ctx   context.Context
	abort context.CancelFunc
	done  chan struct{}
}

// Option configures an Updater during construction.
type Option func(*Updater)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.client = c
	}
}

// WithLauncher sets the launcher invoked after successful downloads.
func WithLauncher(l Launcher) Option {
	return func(u *Updater) {
		u.launcher = l
	}
}

// WithLogger sets the logger for task lifecycle and failures.
func WithLogger(logger *log.Logger) Option {
	return func(u *Updater) {
		u.logger = logger
	}
}

// WithQueueSize overrides the event queue capacity.
func WithQueueSize(n int) Option {
	return func(u *Updater) {
		u.queueSize = n
	}
}

// New creates an Updater that stores downloads under destDir unless a
// user destination override is set. destDir is created if missing.
func New(destDir string, opts ...Option) (*Updater, error) {
	if destDir == "" {
		return nil, fmt.Errorf("destination folder is empty")
	}

	u := &Updater{destDir: destDir}
	for _, opt := range opts {
		opt(u)
	}

	if u.client == nil {
		u.client = &http.Client{Timeout: 30 * time.Second}
	}
	if u.launcher == nil {
		u.launcher = noopLauncher{}
	}
	if u.logger == nil {
		u.logger = log.Default()
	}
	u.logger = u.logger.WithPrefix("update")
	u.events = newQueue(u.queueSize)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		u.logger.Warn("could not create destination folder", "dir", destDir, "err", err)
	}

	return u, nil
}

// Events returns the notification stream. The channel is closed by Close.
func (u *Updater) Events() <-chan Event {
	return u.events.ch
}

// DefaultDestFolder returns the folder downloads land in when no user
// destination is set.
func (u *Updater) DefaultDestFolder() string {
	return u.destDir
}

// SetDestPath sets the destination override consulted by the next
// StartDownload call. An empty path restores the default behavior.
func (u *Updater) SetDestPath(path string) {
	u.mu.Lock()
	u.userDest = path
	u.mu.Unlock()
}

// StartVersionCheck begins a background fetch and parse of the version
// descriptor at url. Any task in flight is canceled and joined first.
func (u *Updater) StartVersionCheck(url string) error {
	if url == "" {
		return fmt.Errorf("version check url is empty")
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrClosed
	}

	t := u.beginLocked()
	go u.checkVersion(t, url)
	return nil
}

// StartDownload begins a background download of req.URL. The destination
// is resolved now: the user override when set, otherwise the default
// folder plus the url's trailing filename. Any task in flight is canceled
// and joined first.
func (u *Updater) StartDownload(req DownloadRequest) error {
	if req.URL == "" {
		return fmt.Errorf("download url is empty")
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrClosed
	}

	dest := u.userDest
	if dest == "" {
		if name := FilenameFromURL(req.URL); name != "" {
			dest = filepath.Join(u.destDir, name)
		}
	}

	t := u.beginLocked()
	go u.download(t, req, dest)
	return nil
}

// Cancel asks the task in flight to stop. It does not block; the task
// observes the flag at its next progress step.
func (u *Updater) Cancel() {
	u.cancel.Store(true)
	if t := u.cur.Load(); t != nil {
		t.abort()
	}
}

// Wait blocks until the task in flight, if any, has finished.
func (u *Updater) Wait() {
	if t := u.cur.Load(); t != nil {
		<-t.done
	}
}

// Close cancels the task in flight, waits for it to finish and closes the
// event channel. Close is idempotent; the updater cannot be used again
// afterwards.
func (u *Updater) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}

	u.joinLocked()
	u.closed = true
	u.events.close()
}

// beginLocked joins the previous task and registers a fresh one.
// Callers hold mu.
func (u *Updater) beginLocked() *task {
	u.joinLocked()
	u.cancel.Store(false)

	ctx, abort := context.WithCancel(context.Background())
	t := &task{
		id:    uuid.NewString(),
		ctx:   ctx,
		abort: abort,
		done:  make(chan struct{}),
	}
	u.cur.Store(t)
	return t
}

// joinLocked cancels the task in flight and waits it out. Callers hold mu.
func (u *Updater) joinLocked() {
	t := u.cur.Load()
	if t == nil {
		return
	}

	u.cancel.Store(true)
	t.abort()
	<-t.done
	u.cur.Store(nil)
}

// publish enqueues an event, noting drops when the consumer lags.
func (u *Updater) publish(logger *log.Logger, ev Event) {
	if !u.events.publish(ev) {
		logger.Debug("event dropped", "kind", ev.Kind, "value", ev.Value)
	}
}

// checkVersion fetches and parses a version descriptor, then publishes
// the release version and, when one is ahead of it, the experimental
// version. Failures are logged and swallowed.
func (u *Updater) checkVersion(t *task, url string) {
	defer close(t.done)

	logger := u.logger.With("task", t.id, "url", url)
	logger.Debug("starting version check")

	body, err := fetch(t.ctx, u.client, url, maxVersionBytes, &u.cancel, nil)
	if err != nil {
		logger.Error("version check failed", "err", err)
		return
	}

	report, err := ParseDescriptor(string(body))
	if err != nil {
		logger.Error("version check failed", "err", err)
		return
	}

	u.publish(logger, Event{Kind: EventReleaseVersion, Value: report.Release.String()})
	logger.Info("newest release", "version", report.Release)

	if experimental, ok := report.Experimental(); ok {
		u.publish(logger, Event{Kind: EventExperimentalVersion, Value: experimental.String()})
		logger.Info("newest experimental", "version", experimental)
	}
}

// download runs one artifact download and, on success, hands the result
// to the launcher. Failures are logged and swallowed.
func (u *Updater) download(t *task, req DownloadRequest, dest string) {
	defer close(t.done)

	logger := u.logger.With("task", t.id, "url", req.URL)
	logger.Info("starting download", "dest", dest)

	path, err := downloadFile(t.ctx, u.client, req, dest, &u.cancel, func(percent int) {
		u.publish(logger, Event{Kind: EventDownloadProgress, Value: strconv.Itoa(percent)})
	})
	if err != nil {
		logger.Error("download failed", "err", err)
		return
	}
	logger.Info("download finished", "path", path)

	if req.StartAfter {
		if !u.launcher.Run(path) {
			logger.Error("running downloaded file failed", "path", path)
		}
		return
	}
	u.launcher.Reveal(path)
}
