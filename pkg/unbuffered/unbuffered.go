// Package unbuffered provides an io.Writer adapter that flushes after every
// write. When tool output is teed into a buffered log file, this keeps the
// harness's own lines and the executed tools' lines in their real order.
package unbuffered

import "io"

type flusher interface {
	Flush() error
}

// Writer forwards writes to the underlying writer and flushes it after each
// one when it supports flushing.
type Writer struct {
	w io.Writer
}

// New wraps w in an unbuffered Writer.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer.
func (u *Writer) Write(p []byte) (int, error) {
	n, err := u.w.Write(p)
	if err != nil {
		return n, err
	}
	if f, ok := u.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return n, err
		}
	}
	return n, nil
}
