package pkg

import "io"

// CombinedWriter writes the given content to all added writers
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.writers {
		if n, err = w.Write(p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}
