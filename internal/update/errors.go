package update

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDestination indicates no destination path could be resolved
	// for a download.
	ErrEmptyDestination = errors.New("download destination is empty")

	// ErrCanceled indicates the task observed the cancel flag and stopped.
	ErrCanceled = errors.New("download was canceled")

	// ErrClosed indicates the updater was closed and cannot start tasks.
	ErrClosed = errors.New("updater is closed")

	// ErrInvalidReleaseVersion indicates the first line of a version
	// descriptor is not a semantic version.
	ErrInvalidReleaseVersion = errors.New("invalid release version")

	// ErrInvalidPrereleaseVersion indicates an alpha= or beta= line of a
	// version descriptor is not a semantic version.
	ErrInvalidPrereleaseVersion = errors.New("invalid prerelease version")
)

// TransportError describes a failed HTTP transfer.
// Status is zero when the request never produced a response.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("getting %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StagingError describes a failure writing or renaming the staging file of
// a download. The temporary file, if one was written, is left in place.
type StagingError struct {
	Temp string
	Dest string
	Err  error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("staging %s to %s: %v", e.Temp, e.Dest, e.Err)
}

func (e *StagingError) Unwrap() error {
	return e.Err
}
