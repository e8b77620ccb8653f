package events

import (
	"encoding/json"
	"testing"
)

func TestPublishFanOut(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()

	h.Publish(Changed("req-1", CandidateCreated, 7))

	for name, ch := range map[string]chan string{"a": a, "b": b} {
		select {
		case raw := <-ch:
			var e Envelope
			if err := json.Unmarshal([]byte(raw), &e); err != nil {
				t.Fatalf("%s: bad envelope json: %v", name, err)
			}
			if e.Type != CandidateCreated || e.Version != 1 || e.RequestID != "req-1" {
				t.Errorf("%s: envelope = %+v", name, e)
			}
			var c Change
			if err := json.Unmarshal(e.Data, &c); err != nil {
				t.Fatalf("%s: bad change json: %v", name, err)
			}
			if c.ID != 7 || c.CandidateID != 0 {
				t.Errorf("%s: change = %+v", name, c)
			}
		default:
			t.Errorf("%s: no event delivered", name)
		}
	}
}

func TestChildChangedCarriesCandidateID(t *testing.T) {
	var e Envelope
	if err := json.Unmarshal([]byte(ChildChanged("", InterviewUpserted, 3, 9)), &e); err != nil {
		t.Fatalf("bad envelope json: %v", err)
	}
	var c Change
	if err := json.Unmarshal(e.Data, &c); err != nil {
		t.Fatalf("bad change json: %v", err)
	}
	if c.ID != 3 || c.CandidateID != 9 {
		t.Errorf("change = %+v, want id 3 for candidate 9", c)
	}
}

func TestSlowSubscriberDropsNotBlocks(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	// Overfill the buffer; Publish must not block.
	overflow := 5
	for i := 0; i < subscriberBuffer+overflow; i++ {
		h.Publish(Changed("", PositionUpdated, int64(i)))
	}
	if got := len(ch); got != subscriberBuffer {
		t.Errorf("buffered = %d, want full buffer %d with the rest dropped", got, subscriberBuffer)
	}
	subs, dropped := h.Stats()
	if subs != 1 || dropped != uint64(overflow) {
		t.Errorf("stats = %d subscribers, %d dropped; want 1 and %d", subs, dropped, overflow)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}
	// Publishing after unsubscribe is a no-op, not a panic.
	h.Publish(Changed("", CandidateDeleted, 1))
	if subs, _ := h.Stats(); subs != 0 {
		t.Errorf("subscribers = %d after unsubscribe", subs)
	}
}
