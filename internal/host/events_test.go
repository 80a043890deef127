package host

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseEvent(t *testing.T) {
	for _, tc := range []struct {
		line     string
		expected Event
	}{
		{"click 120 340", Event{Kind: EventClick, X: 120, Y: 340}},
		{"CLICK 1 2", Event{Kind: EventClick, X: 1, Y: 2}},
		{"250 10", Event{Kind: EventClick, X: 250, Y: 10}},
		{"-5 10", Event{Kind: EventClick, X: -5, Y: 10}},
		{"reset", Event{Kind: EventReset}},
		{"quit", Event{Kind: EventQuit}},
		{"exit", Event{Kind: EventQuit}},
	} {
		t.Run(tc.line, func(t *testing.T) {
			event, err := ParseEvent(tc.line)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, event)
		})
	}

	for _, line := range []string{"jump", "click 1", "click a b", "1 b", "1 2 3 4"} {
		t.Run("Rejects "+line, func(t *testing.T) {
			_, err := ParseEvent(line)

			assert.Error(t, err)
		})
	}

	t.Run("Unknown words wrap ErrUnknownCommand", func(t *testing.T) {
		_, err := ParseEvent("jump")

		assert.ErrorIs(t, err, ErrUnknownCommand)
	})
}

func TestReadEvents(t *testing.T) {
	t.Run("Parses lines and closes the channel at EOF", func(t *testing.T) {
		// Given: input with comments, blanks and one bad line
		input := strings.NewReader("# start\n0 0\n\nnonsense\nclick 150 250\nreset\n")
		events := make(chan Event, 10)

		// When: the input is read
		err := ReadEvents(context.Background(), discardLogger(), input, events)
		require.NoError(t, err)

		// Then: valid events are delivered in order and the channel is closed
		var got []Event
		for event := range events {
			got = append(got, event)
		}
		assert.Equal(t, []Event{
			{Kind: EventClick, X: 0, Y: 0},
			{Kind: EventClick, X: 150, Y: 250},
			{Kind: EventReset},
		}, got)
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		// Given: a cancelled context and an unbuffered channel nobody reads
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		events := make(chan Event)

		// When: the input is read
		err := ReadEvents(ctx, discardLogger(), strings.NewReader("1 1\n2 2\n"), events)

		// Then: it returns without blocking
		require.NoError(t, err)
		_, ok := <-events
		assert.False(t, ok)
	})
}
