package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVWriter writes samples as headerless "time,track" rows.
// Write errors are sticky: the first one is kept and returned by Flush.
type CSVWriter struct {
	w   *csv.Writer
	err error
	row [2]string
}

// NewCSVWriter wraps w. Callers must call Flush when the run ends.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Record writes one row.
func (c *CSVWriter) Record(s Sample) {
	if c.err != nil {
		return
	}
	c.row[0] = strconv.FormatInt(s.Time, 10)
	c.row[1] = strconv.Itoa(s.Track)
	if err := c.w.Write(c.row[:]); err != nil {
		c.err = fmt.Errorf("writing trace sample at t=%d: %w", s.Time, err)
	}
}

// Flush writes buffered rows and reports the first error seen.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	if c.err != nil {
		return c.err
	}
	return c.w.Error()
}
