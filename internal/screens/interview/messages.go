package interview

import (
	"errors"
	"time"

	"github.com/mpandit/prepterm/internal/report"
)

// errUnfinished guards the finish flow: the engine must have reached
// the reporting phase before a report is generated.
var errUnfinished = errors.New("interview still has questions outstanding")

// timerTickMsg is sent every second to refresh the elapsed-time display.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the candidate dismisses the feedback
// overlay.
type feedbackDoneMsg struct{}

// interviewDoneMsg carries the generated final report once the session
// reaches the reporting phase.
type interviewDoneMsg struct {
	Report *report.FinalReport
	Err    error
}
