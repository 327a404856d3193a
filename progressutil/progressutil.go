// Package progressutil provides an ambient, non-hot-path progress bar
// constructor for the percentage callbacks suffixarray.Builder.Build and
// search.Driver.Run invoke, grounded on the teacher's use of
// github.com/vbauerster/mpb/v8 for its own long-running index/search
// progress bars (lexicmap/cmd). The core packages accept a plain
// func(percent int) callback and never import this package themselves,
// keeping the hot path free of a rendering dependency; callers that want
// a terminal progress bar wire one up here.
package progressutil

import (
	"fmt"
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Reporter wraps one mpb bar and exposes it as a func(percent int)
// callback, the shape every core percentage callback in this module
// expects.
type Reporter struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

// New creates a Reporter with a named progress bar writing to w, total
// fixed at 100 (percent units) since every caller reports a 0..100
// percentage rather than a raw item count.
func New(w io.Writer, name string) *Reporter {
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(40))
	bar := p.AddBar(100,
		mpb.PrependDecorators(decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight})),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &Reporter{progress: p, bar: bar}
}

// Callback returns a func(percent int) suitable for
// suffixarray.Builder.Build's or search.Driver.Run's progress parameter.
func (r *Reporter) Callback() func(percent int) {
	last := 0
	return func(percent int) {
		if percent < last {
			return
		}
		r.bar.SetCurrent(int64(percent))
		last = percent
	}
}

// Wait blocks until the underlying bar has finished rendering, mirroring
// the teacher's call to pbs.Wait() after its indexing/searching loop.
func (r *Reporter) Wait() { r.progress.Wait() }

// Done marks the bar as complete, for callers whose operation finished
// at a percentage below 100 (e.g. an early return on an empty input).
func (r *Reporter) Done() {
	r.bar.SetCurrent(100)
}

// Spinner returns a lightweight textual reporter for ambient diagnostics
// where a full progress bar would be noise (small inputs, test runs),
// logging one line every interval instead of redrawing a bar.
func Spinner(w io.Writer, name string, interval time.Duration) func(percent int) {
	last := time.Time{}
	return func(percent int) {
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < interval && percent < 100 {
			return
		}
		last = now
		fmt.Fprintf(w, "%s: %d%%\n", name, percent)
	}
}
