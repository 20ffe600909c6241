package data

import (
	"net/http"
	"time"

	"github.com/araddon/dateparse"
)

const (
	headerDataType     = "X-Data-Type"
	headerLastModified = "Last-Modified"

	dataTypeFile      = "file"
	dataTypeDirectory = "directory"
)

// defaultLastModified is reported for files served without a usable
// Last-Modified header.
var defaultLastModified = time.Date(2015, time.March, 14, 8, 0, 0, 0, time.UTC)

// dataType returns the X-Data-Type header, or "" when absent.
func dataType(h http.Header) string {
	return h.Get(headerDataType)
}

// lastModified parses the Last-Modified header, falling back to
// defaultLastModified.
func lastModified(h http.Header) time.Time {
	value := h.Get(headerLastModified)
	if value == "" {
		return defaultLastModified
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return defaultLastModified
	}
	return t.UTC()
}

// parseTimestamp parses the timestamps found in listing pages.
func parseTimestamp(value string) (time.Time, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
