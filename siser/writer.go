// Package siser frames named, timestamped blocks of data so that many of
// them can be appended to one file and read back:
//
//	--- <len> <unix ms> <name>\n
//	<data>\n
//
// A newline is added after data that doesn't end with one.
package siser

import (
	"bytes"
	"io"
	"strconv"
	"sync"
	"time"
)

var hdrPrefix = []byte("--- ")

// Writer appends framed blocks to w. It's safe for concurrent use.
type Writer struct {
	w        io.Writer
	writeBuf bytes.Buffer
	mu       sync.Mutex
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: w,
	}
}

// Write writes d with timestamp t (now if zero) and name.
// Returns number of bytes written, including the header.
func (w *Writer) Write(d []byte, t time.Time, name string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// don't keep a big buffer around after one big write
	if w.writeBuf.Cap() > 100*1024 && len(d) < 50*1024 {
		w.writeBuf = bytes.Buffer{}
	}
	if t.IsZero() {
		t = time.Now()
	}
	d2 := MarshalLine(name, t, d, &w.writeBuf)
	return w.w.Write(d2)
}

// MarshalLine frames d. wb is re-used if not nil, so the result is only
// valid until the next call with the same wb.
// If t is zero, timestamp is written as 0.
func MarshalLine(name string, t time.Time, d []byte, wb *bytes.Buffer) []byte {
	if wb == nil {
		wb = &bytes.Buffer{}
	} else {
		wb.Reset()
	}
	// over-estimating is fine, under-estimating costs an alloc
	wb.Grow(len(hdrPrefix) + len(name) + len(d) + 64)

	wb.Write(hdrPrefix)
	n := len(d)
	wb.WriteString(strconv.Itoa(n))
	wb.WriteByte(' ')
	var ms int64
	if !t.IsZero() {
		ms = t.UnixMilli()
	}
	wb.WriteString(strconv.FormatInt(ms, 10))
	if name != "" {
		wb.WriteByte(' ')
		wb.WriteString(name)
	}
	wb.WriteByte('\n')
	if n > 0 {
		wb.Write(d)
		if d[n-1] != '\n' {
			wb.WriteByte('\n')
		}
	}
	return wb.Bytes()
}
