package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-grid/internal/entity"
	"github.com/rocketscienceinc/tictactoe-grid/internal/tictactoe"
)

const (
	title      = "Tic-Tac-Toe"
	credits    = "Created by Jared Tjahjadi"
	startGame  = "Press anywhere to start"
	tieMessage = "Tie!"
	winFormat  = "%s wins!"
)

// Text draws game views as plain text. A frame is written only when the
// view revision differs from the last one drawn.
type Text struct {
	mu  sync.Mutex
	out io.Writer

	drawn    bool
	revision uint64
}

func NewText(out io.Writer) *Text {
	return &Text{out: out}
}

func (that *Text) Redraw(view tictactoe.View) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.drawn && that.revision == view.Revision {
		return nil
	}

	if _, err := io.WriteString(that.out, Frame(view)); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	that.drawn = true
	that.revision = view.Revision

	return nil
}

// Frame renders one view.
func Frame(view tictactoe.View) string {
	var sb strings.Builder

	if view.Phase == entity.PhaseNotStarted {
		sb.WriteString(title + "\n")
		sb.WriteString(credits + "\n")
		sb.WriteString(startGame + "\n\n")

		return sb.String()
	}

	separator := strings.TrimSuffix(strings.Repeat("---+", view.Size), "+")

	for row := 0; row < view.Size; row++ {
		cells := make([]string, view.Size)
		for col := 0; col < view.Size; col++ {
			symbol := view.At(row, col).String()
			if symbol == "" {
				symbol = " "
			}
			cells[col] = " " + symbol + " "
		}
		sb.WriteString(strings.Join(cells, "|") + "\n")

		if row < view.Size-1 {
			sb.WriteString(separator + "\n")
		}
	}

	if message := Message(view); message != "" {
		sb.WriteString(message + "\n")
	}

	sb.WriteString("\n")

	return sb.String()
}

// Message is the result line shown over a finished board.
func Message(view tictactoe.View) string {
	if view.Phase != entity.PhaseFinished {
		return ""
	}

	if winner, ok := view.Outcome.Winner(); ok {
		return fmt.Sprintf(winFormat, winner)
	}

	if view.Outcome == entity.OutcomeTie {
		return tieMessage
	}

	return ""
}

// Print writes a free-form block, such as a results summary, between frames.
func (that *Text) Print(block string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := io.WriteString(that.out, block); err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}

	return nil
}

// Summary lists the tally and the most recent results, one line per game.
func Summary(tally entity.Tally, recent []*entity.MatchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Games: %d  O: %d  X: %d  Ties: %d\n",
		tally.Total(), tally.WinsA, tally.WinsB, tally.Ties)

	for _, result := range recent {
		outcome := fmt.Sprintf(winFormat, result.Winner)
		if result.IsTie() {
			outcome = tieMessage
		}

		fmt.Fprintf(&sb, "  %s  %dx%d  %s in %d moves\n",
			result.FinishedAt.Format(time.DateTime), result.Size, result.Size, outcome, result.Moves)
	}

	sb.WriteString("\n")

	return sb.String()
}
