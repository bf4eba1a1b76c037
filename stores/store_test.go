package stores

import (
	"testing"

	"github.com/shopspring/decimal"
)

type mergeTarget struct {
	Name   string          `json:"name"`
	Terms  int             `json:"terms"`
	Amount decimal.Decimal `json:"amount"`
}

func TestMergeInto(t *testing.T) {
	current := mergeTarget{Name: "ABC Ltd", Terms: 30, Amount: decimal.NewFromInt(100)}

	t.Run("patched fields overlay, others survive", func(t *testing.T) {
		got, err := mergeInto(current, map[string]any{"name": "Brown Roofing"})
		if err != nil {
			t.Fatalf("mergeInto: %v", err)
		}
		if got.Name != "Brown Roofing" {
			t.Errorf("Name = %q", got.Name)
		}
		if got.Terms != 30 || !got.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("untouched fields changed: %+v", got)
		}
	})

	t.Run("unknown keys are dropped", func(t *testing.T) {
		got, err := mergeInto(current, map[string]any{"no_such_field": true, "terms": 14})
		if err != nil {
			t.Fatalf("mergeInto: %v", err)
		}
		if got.Terms != 14 {
			t.Errorf("Terms = %d, want 14", got.Terms)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		got, err := mergeInto(current, map[string]any{})
		if err != nil {
			t.Fatalf("mergeInto: %v", err)
		}
		if got.Name != current.Name || got.Terms != current.Terms || !got.Amount.Equal(current.Amount) {
			t.Errorf("no-op patch changed state: %+v", got)
		}
	})

	t.Run("decimal values survive the overlay", func(t *testing.T) {
		got, err := mergeInto(current, map[string]any{"amount": decimal.RequireFromString("12.34")})
		if err != nil {
			t.Fatalf("mergeInto: %v", err)
		}
		if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
			t.Errorf("Amount = %s, want 12.34", got.Amount)
		}
	})
}

// Events raised mid-transaction must not reach subscribers until the queue is
// flushed after commit; an abandoned queue (rollback) delivers nothing.
func TestEventQueue_HoldsEventsUntilFlush(t *testing.T) {
	var n notifier
	var got []Event
	n.Subscribe(func(e Event) { got = append(got, e) })

	consume := Event{Store: "settings", Action: "consume:invoice", UserID: "u1"}
	save := Event{Store: "history", Action: "save:invoice", UserID: "u1"}

	q := &EventQueue{}
	q.add(func() { n.publish(consume) })
	q.add(func() { n.publish(save) })

	if len(got) != 0 {
		t.Fatalf("subscriber saw %d events before flush", len(got))
	}

	q.Flush()
	if len(got) != 2 || got[0] != consume || got[1] != save {
		t.Fatalf("flushed events = %v, want [%v %v] in order", got, consume, save)
	}

	// A second flush must not redeliver.
	q.Flush()
	if len(got) != 2 {
		t.Errorf("repeated flush redelivered, %d events total", len(got))
	}
}

func TestPublishTxWithoutQueueDeliversImmediately(t *testing.T) {
	var n notifier
	var got []Event
	n.Subscribe(func(e Event) { got = append(got, e) })

	e := Event{Store: "company", Action: "update", UserID: "u1"}
	n.publishTx(nil, e)
	if len(got) != 1 || got[0] != e {
		t.Fatalf("events = %v, want [%v]", got, e)
	}
}
