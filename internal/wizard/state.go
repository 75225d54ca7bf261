// Package wizard implements the create-forum wizard engine: a two-step
// state machine that collects a channel handle, runs a remote search,
// lets the user pick a candidate and submits a creation request.
package wizard

import "fmt"

// Step identifies a stage of the wizard flow.
type Step int

const (
	StepSearch Step = 1 // Handle input and channel search
	StepSelect Step = 2 // Candidate selection and submit
)

// MinSubscribers is the admission threshold applied to search results.
const MinSubscribers = 10000

// MinSearchInputLen is the minimum handle length (in characters) accepted by Advance.
const MinSearchInputLen = 2

// Progress returns the progress percentage shown for a step.
func Progress(s Step) int {
	if s == StepSelect {
		return 100
	}
	return 50
}

// Candidate is a remotely discovered channel that may back a new forum.
type Candidate struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	SubscriberCount int64  `json:"subscriber_count"`
}

// Admit reports whether a candidate passes the subscriber threshold.
func Admit(c Candidate) bool {
	return c.SubscriberCount >= MinSubscribers
}

// FilterCandidates returns the admitted candidates in their original order.
// The result is never nil.
func FilterCandidates(in []Candidate) []Candidate {
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		if Admit(c) {
			out = append(out, c)
		}
	}
	return out
}

// Phase is the state machine node derived from step and loading.
type Phase int

const (
	Step1Idle Phase = iota
	Step1Loading
	Step2Idle
	Step2Loading
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Step1Idle:
		return "Step1Idle"
	case Step1Loading:
		return "Step1Loading"
	case Step2Idle:
		return "Step2Idle"
	case Step2Loading:
		return "Step2Loading"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a snapshot of the wizard.
type State struct {
	Step                Step
	Progress            int
	Loading             bool
	SearchInput         string
	Candidates          []Candidate
	SelectedCandidateID string // empty when nothing is selected
}

// InitialState returns the state of a freshly opened wizard.
func InitialState() State {
	return State{
		Step:       StepSearch,
		Progress:   Progress(StepSearch),
		Candidates: []Candidate{},
	}
}

// Phase returns the state machine node for this snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Step == StepSelect && s.Loading:
		return Step2Loading
	case s.Step == StepSelect:
		return Step2Idle
	case s.Loading:
		return Step1Loading
	default:
		return Step1Idle
	}
}

// HasSelection reports whether a candidate is selected.
func (s State) HasSelection() bool {
	return s.SelectedCandidateID != ""
}

// SelectedCandidate returns the selected candidate if it is among the candidates.
func (s State) SelectedCandidate() (Candidate, bool) {
	for _, c := range s.Candidates {
		if c.ID == s.SelectedCandidateID {
			return c, true
		}
	}
	return Candidate{}, false
}

// clone returns a copy that shares no slice memory with s.
func (s State) clone() State {
	out := s
	out.Candidates = append([]Candidate(nil), s.Candidates...)
	if out.Candidates == nil {
		out.Candidates = []Candidate{}
	}
	return out
}
