// Package sse reads server-sent event streams incrementally.
package sse

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Event is one dispatched SSE frame. Data holds the first data line only.
type Event struct {
	Name string
	Data string
}

// Reader splits a stream into events separated by blank lines.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 16*1024)}
}

// Next blocks until the next complete event carrying a non-empty data line is
// available. A trailing event without its terminating blank line is dropped
// and io.EOF returned.
func (r *Reader) Next() (Event, error) {
	var (
		current Event
		hasData bool
	)
	for {
		line, err := r.br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if hasData {
				return current, nil
			}
			current = Event{}
			continue
		}

		switch {
		case strings.HasPrefix(line, "data:"):
			if !hasData {
				data := strings.TrimSpace(line[len("data:"):])
				if data != "" {
					current.Data = data
					hasData = true
				}
			}
		case strings.HasPrefix(line, "event:"):
			current.Name = strings.TrimSpace(line[len("event:"):])
		}
	}
}
