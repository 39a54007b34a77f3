package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"

	"bugg-go/internal/bugg"
)

// defaultWidth is the bar width when the terminal size is unknown.
const defaultWidth = 40

// New returns terminal bars when out is a terminal and plain lines otherwise.
func New(out *os.File) bugg.Progress {
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return NewLines(out)
	}

	width := defaultWidth
	if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
		// Leave room for the description and counters.
		width = max(10, min(defaultWidth, cols/3))
	}
	return NewBars(out, width)
}

// Bars renders one mpb bar per file.
type Bars struct {
	out   io.Writer
	width int
}

// NewBars creates a Bars renderer writing to out.
func NewBars(out io.Writer, width int) *Bars {
	return &Bars{out: out, width: width}
}

// Wrap starts a bar for r. Each file gets its own mpb container, which is
// drained on Close so the next console prompt never interleaves with rendering.
func (b *Bars) Wrap(desc string, r io.Reader, total int64) io.ReadCloser {
	p := mpb.New(mpb.WithOutput(b.out), mpb.WithWidth(b.width))
	bar := p.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(desc, decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersKibiByte("% .2f / % .2f"),
			decor.Name(" "),
			decor.Percentage(),
		),
	)
	return &barReader{r: bar.ProxyReader(r), bar: bar, p: p}
}

type barReader struct {
	r   io.Reader
	bar *mpb.Bar
	p   *mpb.Progress
}

func (b *barReader) Read(p []byte) (int, error) { return b.r.Read(p) }

// Close completes or aborts the bar and waits for the final render.
// The underlying reader is left open.
func (b *barReader) Close() error {
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.p.Wait()
	return nil
}

// Lines prints a start line and a result line per file. Used when the output
// is not a terminal.
type Lines struct {
	out io.Writer
}

// NewLines creates a Lines reporter writing to out.
func NewLines(out io.Writer) *Lines {
	return &Lines{out: out}
}

func (l *Lines) Wrap(desc string, r io.Reader, total int64) io.ReadCloser {
	fmt.Fprintf(l.out, "%s (%s)\n", desc, units.HumanSize(float64(total)))
	return &lineReader{r: r, out: l.out, desc: desc, total: total}
}

type lineReader struct {
	r     io.Reader
	out   io.Writer
	desc  string
	total int64
	read  int64
}

func (l *lineReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	return n, err
}

func (l *lineReader) Close() error {
	if l.read < l.total {
		fmt.Fprintf(l.out, "%s: incomplete (%s of %s)\n", l.desc,
			units.HumanSize(float64(l.read)), units.HumanSize(float64(l.total)))
		return nil
	}
	fmt.Fprintf(l.out, "%s: done\n", l.desc)
	return nil
}

var (
	_ bugg.Progress = (*Bars)(nil)
	_ bugg.Progress = (*Lines)(nil)
)
