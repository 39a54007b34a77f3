package bugg

import "io"

// Progress reports upload progress for a byte stream.
type Progress interface {
	// Wrap returns a reader that passes bytes from r through unchanged while
	// reporting them against total. Close finalises the indicator; it does not
	// close r.
	Wrap(desc string, r io.Reader, total int64) io.ReadCloser
}

// NopProgress reports nothing.
type NopProgress struct{}

func (NopProgress) Wrap(_ string, r io.Reader, _ int64) io.ReadCloser {
	return io.NopCloser(r)
}
