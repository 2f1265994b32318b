package update

// DownloadRequest describes a single artifact download
type DownloadRequest struct {
	URL        string // Direct download URL for the artifact
	StartAfter bool   // Launch the artifact once the download lands
}

// Progress reports byte counts for a transfer in flight
type Progress struct {
	Downloaded int64 // Bytes received so far
	Total      int64 // Expected total, zero when the server sent no length
}

// Percent returns the integer completion percentage, 0 while the total
// is unknown
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(100 * p.Downloaded / p.Total)
}

// Launcher runs or reveals downloaded artifacts. Both operations report
// success as a bool; platforms lacking a capability return false.
type Launcher interface {
	Run(path string) bool
	Reveal(path string) bool
}

// noopLauncher is used when no launcher is configured.
type noopLauncher struct{}

func (noopLauncher) Run(string) bool    { return false }
func (noopLauncher) Reveal(string) bool { return false }
