package windowed

import (
	"testing"
	"time"

	"github.com/flickos/flick/internal/gesture"
	"github.com/stretchr/testify/require"
)

func TestDispatchEventsForwardsToCallback(t *testing.T) {
	var got []gesture.Event
	c := &Conn{dispatch: func(events []gesture.Event, now time.Time) { got = events }}

	c.dispatchEvents([]gesture.Event{{Kind: gesture.EventTap}}, time.Unix(0, 0))
	require.Len(t, got, 1)
}

func TestDispatchEventsSkipsNilCallback(t *testing.T) {
	c := &Conn{}
	require.NotPanics(t, func() {
		c.dispatchEvents([]gesture.Event{{Kind: gesture.EventTap}}, time.Unix(0, 0))
	})
}

func TestDispatchEventsSkipsEmptyEvents(t *testing.T) {
	called := false
	c := &Conn{dispatch: func(events []gesture.Event, now time.Time) { called = true }}

	c.dispatchEvents(nil, time.Unix(0, 0))
	require.False(t, called)
}
