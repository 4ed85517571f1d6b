package web

import (
	"encoding/json"
	"net/http"

	"mailmerge/backend/internal/history"
	"mailmerge/backend/internal/logging"
	"mailmerge/backend/internal/send"
)

// handlePlan returns the finalized per-recipient pairing and batch policy
// without composing batches or recording anything.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	plans, policy := ws.Plan()
	writeJSON(w, map[string]interface{}{
		"recipients": plans,
		"policy":     policy,
	})
}

// sendRequest is the JSON body for POST /api/send. Profile overrides the
// configured default when set.
type sendRequest struct {
	Profile string `json:"profile,omitempty"`
}

// sendResponse is the composed plan plus the audit record written for it.
type sendResponse struct {
	Plan   send.Plan          `json:"plan"`
	Record history.SendRecord `json:"record"`
}

// handleSend composes the send batches under the requested profile and
// writes an audit record. Nothing is dispatched over the network here;
// the composed plan is handed back for the delivery pipeline.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req sendRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	kind := send.ProfileKind(s.cfg.Send.Profile)
	if req.Profile != "" {
		kind = send.ProfileKind(req.Profile)
	}

	profile, err := send.ResolveProfile(kind, send.ProfileConfig{
		FromAddress:   s.cfg.Send.FromAddress,
		BulkBatchSize: s.cfg.Send.BulkBatchSize,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	recipients, policy := ws.Plan()
	if len(recipients) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "nothing to send")
		return
	}

	plan := send.Compose(recipients, policy, profile)

	record, err := s.history.RecordSend(r.Context(), history.SendRecord{
		Profile:         string(profile.Kind),
		Recipients:      plan.RecipientCount(),
		Attachments:     plan.AttachmentCount(),
		Batches:         len(plan.Batches),
		SingleRecipient: policy.SingleRecipient,
	})
	if err != nil {
		// The plan is already composed; a failed audit write is logged
		// but does not block the operator.
		logging.FromContext(r.Context()).Error("send history write failed", "error", err)
	}

	logging.FromContext(r.Context()).Info("send composed",
		"session_id", sessionID(r.Context()),
		"profile", profile.Kind,
		"recipients", plan.RecipientCount(),
		"batches", len(plan.Batches),
		"single_recipient", policy.SingleRecipient,
	)
	writeJSON(w, sendResponse{Plan: plan, Record: record})
}

// handleHistory lists recent send records, newest first. Returns an empty
// list when the history store is disabled.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 50)

	records, err := s.history.ListRecent(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if records == nil {
		records = []history.SendRecord{}
	}
	writeJSON(w, records)
}
