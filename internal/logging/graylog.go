package logging

import (
	"fmt"
	"io"

	"github.com/Graylog2/go-gelf/gelf"
)

// OpenGraylog dials a Graylog GELF UDP input at addr (host:port). Every
// message is tagged with facility.
func OpenGraylog(addr, facility string) (io.WriteCloser, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, fmt.Errorf("graylog %s: %w", addr, err)
	}
	w.Facility = facility
	return w, nil
}
