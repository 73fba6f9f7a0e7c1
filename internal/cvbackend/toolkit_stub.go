//go:build !gocv

package cvbackend

import (
	"errors"

	"github.com/ironsheep/cemetery-detector/internal/cemetery"
)

// Available reports whether the binary was built with OpenCV support.
const Available = false

// ErrUnavailable is returned by Toolkit in builds without the gocv tag.
var ErrUnavailable = errors.New("OpenCV backend not compiled in (rebuild with -tags gocv)")

// Toolkit always fails in this build.
func Toolkit() (cemetery.Toolkit, error) {
	return cemetery.Toolkit{}, ErrUnavailable
}
