package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every Write out to all underlying writers,
// used for writing logs to a file and STDOUT at the same time.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

// Write writes p to all writers; a failing writer does not stop the
// others, its error is combined into the returned error.
func (cw CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Combine(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
