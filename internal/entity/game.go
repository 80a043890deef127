package entity

import "time"

// Phase is the top-level state of a game.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome classifies a game: still undecided, won by one mark, or tied.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeWinA
	OutcomeWinB
	OutcomeTie
)

const (
	ResultTie = "-"

	outcomeUndecided = "undecided"
	outcomeTie       = "tie"
)

// WinFor returns the winning outcome for mark. Empty maps to undecided.
func WinFor(mark Cell) Outcome {
	switch mark {
	case MarkA:
		return OutcomeWinA
	case MarkB:
		return OutcomeWinB
	default:
		return OutcomeUndecided
	}
}

// Winner returns the winning mark, false for undecided and tie.
func (o Outcome) Winner() (Cell, bool) {
	switch o {
	case OutcomeWinA:
		return MarkA, true
	case OutcomeWinB:
		return MarkB, true
	default:
		return EmptyCell, false
	}
}

func (o Outcome) IsDecided() bool {
	return o != OutcomeUndecided
}

func (o Outcome) String() string {
	switch o {
	case OutcomeTie:
		return outcomeTie
	case OutcomeWinA, OutcomeWinB:
		winner, _ := o.Winner()
		return winner.String()
	default:
		return outcomeUndecided
	}
}

// MatchResult is the record kept for a finished game.
type MatchResult struct {
	ID         string    `json:"id"`
	Size       int       `json:"size"`
	Winner     string    `json:"winner"`
	Board      []string  `json:"board"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that *MatchResult) IsTie() bool {
	return that.Winner == ResultTie
}

// Tally counts finished games by result.
type Tally struct {
	WinsA int64 `json:"wins_o"`
	WinsB int64 `json:"wins_x"`
	Ties  int64 `json:"ties"`
}

func (that Tally) Total() int64 {
	return that.WinsA + that.WinsB + that.Ties
}
