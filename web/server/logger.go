package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-lensing-raytracer/pkg/core"
)

// RequestLogger implements core.Logger by tagging renderer output with a render ID
type RequestLogger struct {
	renderID string
}

// NewRequestLogger creates a new logger for a specific render
func NewRequestLogger(renderID string) core.Logger {
	return &RequestLogger{renderID: renderID}
}

// Printf implements core.Logger interface
func (rl *RequestLogger) Printf(format string, args ...interface{}) {
	log.Printf("[%s] %s", rl.renderID, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}
