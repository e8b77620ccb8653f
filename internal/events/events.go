package events

import (
	"encoding/json"
	"time"
)

// Change notification types, one per mutating operation the API exposes.
const (
	CandidateCreated  = "candidate_created"
	CandidateUpdated  = "candidate_updated"
	CandidateDeleted  = "candidate_deleted"
	PositionCreated   = "position_created"
	PositionUpdated   = "position_updated"
	PositionDeleted   = "position_deleted"
	InterviewUpserted = "interview_upserted"
	ReferenceUpserted = "reference_upserted"
	ReferenceCreated  = "reference_created"
	ApprovalCreated   = "approval_created"
)

// Envelope is the wire shape of one SSE message.
type Envelope struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Change identifies the record a notification is about. CandidateID is set
// on child-record events so the UI can refresh the right detail view.
type Change struct {
	ID          int64 `json:"id"`
	CandidateID int64 `json:"candidateId,omitempty"`
}

// Changed builds the envelope for a record-level change.
func Changed(reqID, typ string, id int64) string {
	return marshal(reqID, typ, &Change{ID: id})
}

// ChildChanged is Changed for interview, reference and approval records,
// which the UI keys by candidate rather than by their own id.
func ChildChanged(reqID, typ string, id, candidateID int64) string {
	return marshal(reqID, typ, &Change{ID: id, CandidateID: candidateID})
}

// Heartbeat is the greeting and keepalive message on the event stream.
func Heartbeat(reqID string) string {
	return marshal(reqID, "ping", nil)
}

func marshal(reqID, typ string, change *Change) string {
	var raw json.RawMessage
	if change != nil {
		b, _ := json.Marshal(change)
		raw = b
	}
	e := Envelope{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
