// Package progress renders a single-line progress display for long file
// copies.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/lxc/incus/shared/units"
)

// printInterval throttles line rewrites.
const printInterval = 200 * time.Millisecond

// Reader counts bytes flowing through an io.Reader and rewrites one
// console line with the running total. A nil out disables reporting.
type Reader struct {
	r     io.Reader
	out   io.Writer
	label string
	total int64

	mu          sync.Mutex
	read        int64
	lastPrinted time.Time
}

// NewReader wraps r. A total of 0 means the size is unknown and the
// percent column is omitted.
func NewReader(r io.Reader, total int64, label string, out io.Writer) *Reader {
	return &Reader{r: r, out: out, label: label, total: total}
}

func (p *Reader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if p.out == nil {
		return n, err
	}
	if n > 0 {
		p.mu.Lock()
		p.read += int64(n)
		if now := time.Now(); now.Sub(p.lastPrinted) >= printInterval {
			p.print()
			p.lastPrinted = now
		}
		p.mu.Unlock()
	}
	if err == io.EOF {
		p.mu.Lock()
		p.print() // final line
		fmt.Fprint(p.out, "\n")
		p.mu.Unlock()
	}
	return n, err
}

func (p *Reader) print() {
	done := units.GetByteSizeString(p.read, 2)
	if p.total > 0 {
		pct := float64(p.read) / float64(p.total) * 100
		fmt.Fprintf(p.out, "\r[%s] %.1f%% (%s / %s)", p.label, pct, done, units.GetByteSizeString(p.total, 2))
	} else {
		fmt.Fprintf(p.out, "\r[%s] %s", p.label, done)
	}
}
