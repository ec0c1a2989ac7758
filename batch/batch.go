/*
Package batch converts directories of images into raw snapshots in a single
pixel format.
*/
package batch

import (
	"log"

	"github.com/bodgit/pixelformat"
)

// DefaultWorkers is the number of files converted concurrently when no
// other value is given.
const DefaultWorkers = 10

type Converter struct {
	pf      *pixelformat.PixelFormat
	logger  *log.Logger
	workers int
}

func New(pf *pixelformat.PixelFormat, logger *log.Logger, workers int) *Converter {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Converter{
		pf:      pf,
		logger:  logger,
		workers: workers,
	}
}
