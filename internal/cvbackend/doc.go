// Package cvbackend binds the cemetery detectors to OpenCV through gocv.
//
// The OpenCV toolkit is compiled only with the gocv build tag, since it needs
// the OpenCV shared libraries at build and run time:
//
//	go build -tags gocv ./cmd/cemetery-detector
//
// Without the tag, Toolkit returns ErrUnavailable and callers fall back to
// cemetery.NativeToolkit.
package cvbackend
