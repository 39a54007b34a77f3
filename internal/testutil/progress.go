package testutil

import (
	"io"

	"bugg-go/internal/bugg"
)

// RecordingProgress records the description and total of every wrapped stream.
type RecordingProgress struct {
	Descs  []string
	Totals []int64
	Closed int
}

func (p *RecordingProgress) Wrap(desc string, r io.Reader, total int64) io.ReadCloser {
	p.Descs = append(p.Descs, desc)
	p.Totals = append(p.Totals, total)
	return &recordingReader{Reader: r, p: p}
}

type recordingReader struct {
	io.Reader
	p *RecordingProgress
}

func (r *recordingReader) Close() error {
	r.p.Closed++
	return nil
}

var _ bugg.Progress = (*RecordingProgress)(nil)
