package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-lensing-raytracer/pkg/core"
)

// WriterLogger implements core.Logger on top of an arbitrary writer
type WriterLogger struct {
	w io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger writing to w, e.g. stderr when stdout carries the image
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}
