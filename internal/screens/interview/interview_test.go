package interview

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestScreen(t *testing.T) *InterviewScreen {
	t.Helper()
	scr, err := New(bank.Default(), session.DefaultConfig(), nil, session.BindJob("Backend Developer", "", ""))
	if err != nil {
		t.Fatal(err)
	}
	scr.Init()
	return scr
}

func TestQuitConfirmFinishesOnUpdatePath(t *testing.T) {
	scr := newTestScreen(t)

	scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !scr.quitConfirm {
		t.Fatal("Esc should open the quit confirmation")
	}

	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a persistence command")
	}

	// Every engine transition must already have run: the command's
	// goroutine may only touch the store and the finished report.
	if got := scr.engine.State().Phase; got != session.PhaseDone {
		t.Fatalf("phase = %s, want done before the command executes", got)
	}

	res := cmd()
	msg, ok := res.(interviewDoneMsg)
	if !ok {
		t.Fatalf("command returned %T", res)
	}
	if msg.Err != nil {
		t.Fatalf("finish: %v", msg.Err)
	}
	if msg.Report == nil {
		t.Fatal("missing final report")
	}
}

func TestInputIgnoredWhileFinishing(t *testing.T) {
	scr := newTestScreen(t)

	scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	scr.Update(keyPress('y'))
	if !scr.finishing {
		t.Fatal("screen should be finishing after confirming the quit")
	}

	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("keys should be ignored while the report is written out")
	}
	if scr.quitConfirm {
		t.Error("quit confirmation reopened during finish")
	}
}
