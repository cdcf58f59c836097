package tui

import tea "github.com/charmbracelet/bubbletea"

// Messages delivered to the model from outside the event loop.
type (
	textMsg   struct{ Text string }
	noticeMsg struct{ Text string }
	stateMsg  struct{ Recording bool }
)

// Display forwards transcripts, notices and recording state changes into a
// running program. Send blocks until the event loop takes the message and
// returns immediately once the program has exited.
type Display struct {
	p *tea.Program
}

// NewDisplay returns a Display for p.
func NewDisplay(p *tea.Program) *Display {
	return &Display{p: p}
}

// AppendText shows a transcript line.
func (d *Display) AppendText(text string) {
	d.p.Send(textMsg{Text: text})
}

// AppendNotice shows a system line.
func (d *Display) AppendNotice(notice string) {
	d.p.Send(noticeMsg{Text: notice})
}

// SetRecording updates the record indicator.
func (d *Display) SetRecording(recording bool) {
	d.p.Send(stateMsg{Recording: recording})
}
