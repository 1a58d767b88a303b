package logging

import (
	"io"

	"go.uber.org/multierr"
)

// teeWriter writes every log line to all of its writers. Unlike io.MultiWriter
// it keeps going when one of them fails, so a full disk does not silence stdout.
type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) *teeWriter {
	return &teeWriter{writers: writers}
}

func (tw *teeWriter) Write(p []byte) (int, error) {
	var err error
	written := false
	for _, w := range tw.writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		written = true
	}
	if !written && len(tw.writers) > 0 {
		return 0, err
	}
	return len(p), err
}
