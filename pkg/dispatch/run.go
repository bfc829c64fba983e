package dispatch

import (
	"fmt"
	"sync"
	"time"

	log "github.com/cloudposse/dispatch/pkg/logger"
	"github.com/cloudposse/dispatch/pkg/ui"
)

const (
	beginMarker   = "BEGIN"
	endMarker     = "END"
	successMarker = "SUCCESS"
)

// Run is the handle for one dispatch. It is acquired with BEGIN printed and
// must be released with End, which prints END exactly once.
type Run struct {
	say    *log.Prefixer
	styles *ui.Styles
	now    func() time.Time

	mu      sync.Mutex
	state   State
	start   time.Time
	code    int
	endOnce sync.Once
}

func newRun(say *log.Prefixer, styles *ui.Styles, now func() time.Time) *Run {
	return &Run{say: say, styles: styles, now: now}
}

// Begin prints BEGIN and moves the run to Running.
func (r *Run) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != NotStarted {
		return
	}
	r.say.Say(r.styles.Marker.Render(beginMarker))
	r.state = Running
	r.start = r.now()
	log.Debug("Dispatch started", "state", r.state)
}

// Finish reports the elapsed time and the outcome of a task that ran,
// terminates the run, and returns code.
func (r *Run) Finish(code int) int {
	r.say.Say(r.styles.Muted.Render(FormatElapsed(r.now().Sub(r.start))))
	return r.Abort(code)
}

// Abort terminates the run with code without a timing line.
// It is used when no task could be started.
func (r *Run) Abort(code int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if code == 0 {
		r.say.Say(r.styles.Success.Render(successMarker))
	} else {
		r.say.Say(r.styles.Error.Render(fmt.Sprintf("ERROR (%d)", code)))
	}
	r.state = Terminated
	r.code = code
	return code
}

// End prints END. Calls after the first are no-ops.
func (r *Run) End() {
	r.endOnce.Do(func() {
		r.say.Say(r.styles.Marker.Render(endMarker))

		r.mu.Lock()
		defer r.mu.Unlock()
		log.Debug("Dispatch ended", "state", r.state, "code", r.code)
	})
}

// State returns the current lifecycle state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Code returns the exit code recorded when the run terminated.
func (r *Run) Code() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.code
}

// FormatElapsed renders d as "Task completed in <m>m<s>.<ms>s".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := d / time.Minute
	seconds := (d % time.Minute) / time.Second
	millis := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("Task completed in %dm%d.%03ds", minutes, seconds, millis)
}
