package logging

import (
	"fmt"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGelfWriter returns a writer that ships each write to the Graylog GELF
// UDP input at address (host:port).
func NewGelfWriter(address string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("creating gelf writer for %s: %w", address, err)
	}
	w.Facility = "projplan"
	return w, nil
}
