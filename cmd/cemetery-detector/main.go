package main

import (
	"os"

	"github.com/ironsheep/cemetery-detector/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.WithError(err).Error("cemetery-detector failed")
		os.Exit(1)
	}
}
