package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/store"
)

type CandidatesHandler struct {
	Deps
}

// List serves /candidates. ?search= goes through the debouncer; ?start=
// and ?end= (both required together) filter on interview date. Search and
// range are exclusive, search wins, which is how the UI drives them.
func (h CandidatesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if term := q.Get("search"); strings.TrimSpace(term) != "" {
		if err := h.Search.Wait(r.Context()); err != nil {
			// Client went away while debounced; still write a status so
			// the access log does not record this as a 200.
			WriteError(w, r, http.StatusServiceUnavailable, "search_aborted", err.Error())
			return
		}
		out, err := query.SearchCandidates(r.Context(), h.DB, term)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, out)
		return
	}

	out, err := query.CandidatesInInterviewRange(r.Context(), h.DB, q.Get("start"), q.Get("end"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h CandidatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c store.Candidate
	if !decodeBody(w, r, &c) {
		return
	}
	id, err := h.DB.CreateCandidate(r.Context(), c)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Changed(reqID, events.CandidateCreated, id))

	created, err := h.DB.GetCandidate(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// ServeByPath dispatches /candidates/{id} and its child routes.
func (h CandidatesHandler) ServeByPath(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/candidates/"), "/")
	id, ok := parseID(parts[0])
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid candidate id")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodPatch:
			h.update(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "summary":
		h.summary(w, r, id)
	case "interview":
		InterviewsHandler{h.Deps}.serveForCandidate(w, r, id)
	case "references":
		ReferencesHandler{h.Deps}.serveForCandidate(w, r, id)
	case "approvals":
		ApprovalsHandler{h.Deps}.serveForCandidate(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h CandidatesHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	c, err := h.DB.GetCandidate(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, c)
}

func (h CandidatesHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	p, ok := decodeCandidatePatch(w, r)
	if !ok {
		return
	}
	if err := h.DB.UpdateCandidate(r.Context(), id, p); err != nil {
		writeStoreError(w, r, err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Changed(reqID, events.CandidateUpdated, id))

	c, err := h.DB.GetCandidate(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, c)
}

func (h CandidatesHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.DB.DeleteCandidate(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Changed(reqID, events.CandidateDeleted, id))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h CandidatesHandler) summary(w http.ResponseWriter, r *http.Request, id int64) {
	s, err := query.Summarize(r.Context(), h.DB, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, s)
}

// candidatePatchWire separates "field absent" from "field set to null":
// a missing key leaves the column alone, an explicit null clears it.
// The nullable fields are plain RawMessage, not pointers: the decoder
// nils out a pointer field on a literal null, which would make null
// indistinguishable from absent. A non-pointer RawMessage keeps the
// literal "null" bytes; an absent key leaves it empty.
type candidatePatchWire struct {
	CollarType      *string         `json:"collarType"`
	FullName        *string         `json:"fullName"`
	BirthDate       *string         `json:"birthDate"`
	RegisteredCity  *string         `json:"registeredCity"`
	Hometown        *string         `json:"hometown"`
	MilitaryStatus  *string         `json:"militaryStatus"`
	Experience      *int            `json:"experience"`
	Email           *string         `json:"email"`
	PositionID      json.RawMessage `json:"positionId"`
	InterviewDate   json.RawMessage `json:"interviewDate"`
	ServiceLine     json.RawMessage `json:"serviceLine"`
	Result          json.RawMessage `json:"result"`
	RejectionReason json.RawMessage `json:"rejectionReason"`
	InvitationDate  json.RawMessage `json:"invitationDate"`
}

func decodeCandidatePatch(w http.ResponseWriter, r *http.Request) (store.CandidatePatch, bool) {
	var wire candidatePatchWire
	if !decodeBody(w, r, &wire) {
		return store.CandidatePatch{}, false
	}

	p := store.CandidatePatch{
		CollarType:     wire.CollarType,
		FullName:       wire.FullName,
		BirthDate:      wire.BirthDate,
		RegisteredCity: wire.RegisteredCity,
		Hometown:       wire.Hometown,
		MilitaryStatus: wire.MilitaryStatus,
		Experience:     wire.Experience,
		Email:          wire.Email,
	}

	var err error
	p.PositionID, err = optInt64(wire.PositionID)
	if err == nil {
		p.InterviewDate, err = optString(wire.InterviewDate)
	}
	if err == nil {
		p.ServiceLine, err = optString(wire.ServiceLine)
	}
	if err == nil {
		p.Result, err = optString(wire.Result)
	}
	if err == nil {
		p.RejectionReason, err = optString(wire.RejectionReason)
	}
	if err == nil {
		p.InvitationDate, err = optString(wire.InvitationDate)
	}
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return store.CandidatePatch{}, false
	}
	return p, true
}

func optString(raw json.RawMessage) (store.OptString, error) {
	if len(raw) == 0 {
		return store.OptString{}, nil
	}
	if string(raw) == "null" {
		return store.Null(), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return store.OptString{}, err
	}
	return store.String(s), nil
}

func optInt64(raw json.RawMessage) (store.OptInt64, error) {
	if len(raw) == 0 {
		return store.OptInt64{}, nil
	}
	if string(raw) == "null" {
		return store.NullInt64(), nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return store.OptInt64{}, err
	}
	return store.Int64(v), nil
}
