package intent

import "time"

// Kind classifies what a chat message asks for.
type Kind int

const (
	KindEvent Kind = iota
	KindTask
)

func (k Kind) String() string {
	if k == KindTask {
		return "task"
	}
	return "event"
}

// ParsedIntent is the structured result of extracting an event or task from a
// free-text message. For KindEvent, End is always Start plus the fixed event
// duration. For KindTask no timestamps are produced: tasks are undated.
type ParsedIntent struct {
	Kind    Kind
	Title   string
	Start   time.Time
	End     time.Time
	RawText string
}

// Signals reports which kind of scheduling cues a message contains.
type Signals struct {
	HasDate bool
	HasTime bool
}

// Both is true when the message carries a date cue and a time cue.
func (s Signals) Both() bool {
	return s.HasDate && s.HasTime
}

// None is true when the message carries neither cue.
func (s Signals) None() bool {
	return !s.HasDate && !s.HasTime
}
