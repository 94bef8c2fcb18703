package siser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Reader reads blocks written by Writer
type Reader struct {
	r *bufio.Reader

	// valid after ReadNext() returns true, until the next ReadNext()
	Data      []byte
	Name      string
	Timestamp time.Time

	err  error
	done bool
}

func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		r: br,
	}
}

// ReadNext returns false at the end of data or on error, see Err()
func (r *Reader) ReadNext() bool {
	if r.err != nil || r.done {
		return false
	}
	// "--- ${size} ${unix_ms} ${name}\n", name is optional
	hdr, err := r.r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(hdr) == 0 {
			r.done = true
		} else if err == io.EOF {
			r.err = fmt.Errorf("truncated header '%s'", string(hdr))
		} else {
			r.err = err
		}
		return false
	}
	if !bytes.HasPrefix(hdr, hdrPrefix) {
		r.err = fmt.Errorf("unexpected header '%s'", string(hdr))
		return false
	}
	rest := hdr[len(hdrPrefix) : len(hdr)-1]
	parts := bytes.SplitN(rest, []byte{' '}, 3)
	if len(parts) < 2 {
		r.err = fmt.Errorf("unexpected header '%s'", string(hdr))
		return false
	}
	size, err := strconv.Atoi(string(parts[0]))
	if err != nil || size < 0 {
		r.err = fmt.Errorf("bad size in header '%s'", string(hdr))
		return false
	}
	ms, err := strconv.ParseInt(string(parts[1]), 10, 64)
	if err != nil {
		r.err = fmt.Errorf("bad timestamp in header '%s'", string(hdr))
		return false
	}
	r.Timestamp = time.UnixMilli(ms)
	r.Name = ""
	if len(parts) == 3 {
		r.Name = string(parts[2])
	}

	// re-use Data unless it got big
	if cap(r.Data) > 1024*1024 || size > cap(r.Data) {
		r.Data = make([]byte, size)
	} else {
		r.Data = r.Data[:size]
	}
	if _, err = io.ReadFull(r.r, r.Data); err != nil {
		r.err = err
		return false
	}
	// writer adds '\n' after data that doesn't end with one
	if size > 0 && r.Data[size-1] != '\n' {
		if _, err = r.r.Discard(1); err != nil {
			r.err = err
			return false
		}
	}
	return true
}

// Err returns the error that stopped ReadNext(). End of data is not an error.
func (r *Reader) Err() error {
	return r.err
}
