package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/drysim/internal/radial"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Watcher redraws the current profile to a terminal while a batch run
// progresses, at most frameRate times per second.
type Watcher struct {
	w         io.Writer
	name      string
	total     int
	frameRate int
	opts      ProfileOptions
	lastFrame time.Time
	now       func() time.Time
}

func NewWatcher(w io.Writer, name string, totalSteps, frameRate int) *Watcher {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &Watcher{
		w:         w,
		name:      name,
		total:     totalSteps,
		frameRate: frameRate,
		opts:      DefaultProfileOptions(),
		now:       time.Now,
	}
}

func (r *Watcher) OnStep(step int, elapsed float64, f radial.Field) {
	now := r.now()
	if step != r.total && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.render(step, elapsed, f)
}

func (r *Watcher) render(step int, elapsed float64, f radial.Field) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(TitleStyle().Render(r.name))
	b.WriteString(fmt.Sprintf("  t=%.2fh  step %d/%d\n\n", elapsed/radial.SecondsPerHour, step, r.total))
	b.WriteString(FieldPlot(f, r.opts, "Concentration (%) from center to surface"))
	b.WriteString("\n\n")
	frac := 0.0
	if r.total > 0 {
		frac = float64(step) / float64(r.total)
	}
	b.WriteString(ProgressBar(frac, r.opts.Width) + "\n")
	fmt.Fprint(r.w, b.String())
}

func (r *Watcher) Start() { fmt.Fprint(r.w, hideCursor) }
func (r *Watcher) Stop()  { fmt.Fprint(r.w, showCursor) }
