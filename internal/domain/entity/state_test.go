package entity

import "testing"

func TestSubmitterStateTransitions(t *testing.T) {
	cases := []struct {
		from SubmitterState
		ev   StateEvent
		want SubmitterState
		ok   bool
	}{
		{StateIdle, EventIdentified, StateAwaitingPrice, true},
		{StateIdle, EventPriceConfirmed, StateIdle, false},
		{StateIdle, EventExpired, StateIdle, false},
		{StateAwaitingPrice, EventIdentified, StateAwaitingPrice, true},
		{StateAwaitingPrice, EventPriceConfirmed, StateIdle, true},
		{StateAwaitingPrice, EventExpired, StateIdle, true},
	}
	for _, c := range cases {
		got, ok := c.from.Next(c.ev)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("%s on %d = (%s, %v), want (%s, %v)", c.from, c.ev, got, ok, c.want, c.ok)
		}
	}
}
