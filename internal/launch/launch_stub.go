//go:build !windows && !darwin && !linux

package launch

import (
	"errors"
)

var errUnsupported = errors.New("not supported on this platform")

func runFile(string) error {
	return errUnsupported
}

func revealFile(string) error {
	return errUnsupported
}
