package update

// EventKind discriminates notifications raised by update tasks.
type EventKind int

const (
	// EventReleaseVersion carries the newest release version from a
	// version check.
	EventReleaseVersion EventKind = iota
	// EventExperimentalVersion carries a prerelease version newer than
	// the release.
	EventExperimentalVersion
	// EventDownloadProgress carries a download completion percentage.
	EventDownloadProgress
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventReleaseVersion:
		return "release-version"
	case EventExperimentalVersion:
		return "experimental-version"
	case EventDownloadProgress:
		return "download-progress"
	default:
		return "unknown"
	}
}

// Event is one notification for the owning application. Value holds a
// version string or a percentage in decimal form, depending on Kind.
type Event struct {
	Kind  EventKind
	Value string
}

// defaultQueueSize bounds how many unconsumed events are held.
const defaultQueueSize = 128

// queue delivers events to the owning application without ever blocking
// an update task. Publishing to a full queue drops the event.
type queue struct {
	ch chan Event
}

func newQueue(size int) *queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &queue{ch: make(chan Event, size)}
}

// publish enqueues ev and reports whether it was accepted.
func (q *queue) publish(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

func (q *queue) close() {
	close(q.ch)
}
