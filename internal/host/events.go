package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

type EventKind int

const (
	EventClick EventKind = iota
	EventReset
	EventQuit
)

// Event is one input from the pointer or the keyboard. X and Y are pixels
// and only meaningful for clicks.
type Event struct {
	Kind EventKind
	X, Y int
}

// ParseEvent understands "click X Y", "X Y", "reset" and "quit".
func ParseEvent(line string) (Event, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 1 && fields[0] == "reset":
		return Event{Kind: EventReset}, nil
	case len(fields) == 1 && (fields[0] == "quit" || fields[0] == "exit"):
		return Event{Kind: EventQuit}, nil
	case len(fields) == 3 && fields[0] == "click":
		return parseClick(fields[1], fields[2])
	case len(fields) == 2:
		return parseClick(fields[0], fields[1])
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
}

func parseClick(rawX, rawY string) (Event, error) {
	x, err := strconv.Atoi(rawX)
	if err != nil {
		return Event{}, fmt.Errorf("invalid x %q: %w", rawX, err)
	}

	y, err := strconv.Atoi(rawY)
	if err != nil {
		return Event{}, fmt.Errorf("invalid y %q: %w", rawY, err)
	}

	return Event{Kind: EventClick, X: x, Y: y}, nil
}

// ReadEvents parses lines from reader into events until EOF or ctx is done.
// The events channel is closed on return.
func ReadEvents(ctx context.Context, logger *slog.Logger, reader io.Reader, events chan<- Event) error {
	log := logger.With("method", "ReadEvents")

	defer close(events)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		event, err := ParseEvent(line)
		if err != nil {
			log.Warn("skipping input line", "error", err)
			continue
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}
