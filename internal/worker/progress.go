package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/MeKo-Tech/beercolor/internal/palette"
)

const barWidth = 24

// Progress tracks a batch render and redraws a one-line status such as
//
//	[=========>              ] 12/40 glass  last srm 12.5 (38ms)  ETA 4s
type Progress struct {
	out     io.Writer
	kind    Kind
	started time.Time
	enabled bool

	mu       sync.Mutex
	total    int
	done     int
	failed   int
	last     Task
	lastTook time.Duration
	busy     time.Duration
}

// NewProgress creates a tracker for total renders of the given kind. Output
// goes to stderr and is suppressed unless enabled.
func NewProgress(kind Kind, total int, enabled bool) *Progress {
	return &Progress{
		out:     os.Stderr,
		kind:    kind,
		started: time.Now(),
		enabled: enabled,
		total:   total,
	}
}

// SetOutput redirects the status line.
func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	p.out = w
	p.mu.Unlock()
}

// Record stores the outcome of one render and redraws the line.
func (p *Progress) Record(r Result, completed, total, failed int) {
	p.mu.Lock()
	p.done, p.total, p.failed = completed, total, failed
	p.last = r.Task
	p.lastTook = r.Elapsed
	p.busy += r.Elapsed
	line := p.lineLocked()
	out := p.out
	p.mu.Unlock()

	if p.enabled {
		fmt.Fprint(out, "\r", line, "\x1b[K")
	}
}

// Callback returns Record as a pool ProgressFunc.
func (p *Progress) Callback() ProgressFunc {
	return p.Record
}

// Line returns the current status line without redrawing it.
func (p *Progress) Line() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lineLocked()
}

func (p *Progress) lineLocked() string {
	filled := 0
	if p.total > 0 {
		filled = p.done * barWidth / p.total
	}
	bar := strings.Repeat("=", filled)
	if filled < barWidth {
		bar += ">" + strings.Repeat(" ", barWidth-filled-1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %d/%d %s", bar, p.done, p.total, p.kind)
	if p.done > 0 {
		fmt.Fprintf(&b, "  last %s (%s)", taskLabel(p.last), shortDuration(p.lastTook))
	}
	if p.failed > 0 {
		fmt.Fprintf(&b, "  %d failed", p.failed)
	}
	if p.done > 0 && p.done < p.total {
		perTask := time.Since(p.started) / time.Duration(p.done)
		fmt.Fprintf(&b, "  ETA %s", shortDuration(perTask*time.Duration(p.total-p.done)))
	}
	return b.String()
}

// Done ends the status line.
func (p *Progress) Done() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	out := p.out
	p.mu.Unlock()
	fmt.Fprintln(out)
}

// Summary describes the finished batch, including the mean render time.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var mean time.Duration
	if p.done > 0 {
		mean = p.busy / time.Duration(p.done)
	}
	return fmt.Sprintf("Rendered %d/%d %s images (%d failed) in %s, %s per image",
		p.done-p.failed, p.total, p.kind, p.failed, shortDuration(time.Since(p.started)), shortDuration(mean))
}

// taskLabel names a rating the way users type it, e.g. "srm 12.5".
func taskLabel(t Task) string {
	return lowerScale(t.Scale) + " " + palette.FormatValue(t.Value)
}

// shortDuration keeps milliseconds below one second and whole seconds above.
func shortDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
