package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
	"github.com/jrsteele09/go-inventory-server/sheets"
)

// InventoryListHandler returns all inventory rows
func (s *Server) InventoryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.inventory.ListItems(r.Context())
		if err != nil {
			s.writeBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]sheets.Item{"items": items})
	}
}

// InventoryAppendHandler appends one inventory row
func (s *Server) InventoryAppendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item sheets.Item
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
			return
		}
		if item.SKU == "" || item.Name == "" || item.Quantity < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "sku, name and a non-negative quantity are required")
			return
		}

		if err := s.inventory.AppendItem(r.Context(), item); err != nil {
			s.writeBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

type notifyRequest struct {
	Text string `json:"text"`
}

// NotifyHandler forwards a message to the chat-bot webhook
func (s *Server) NotifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "text is required")
			return
		}

		if err := s.notifier.Send(r.Context(), req.Text); err != nil {
			s.writeBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
	}
}

// ReportHandler produces the AI stock report over current inventory
func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.inventory.ListItems(r.Context())
		if err != nil {
			s.writeBackendError(w, r, err)
			return
		}

		report, err := s.reporter.Generate(r.Context(), items)
		if err != nil {
			s.writeBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"report": report})
	}
}

// writeBackendError maps failures from the external collaborators onto
// responses. Delegated-access failures are a retryable-class 502 so the
// caller knows the fault is upstream, not in their request.
func (s *Server) writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := RequestIDFromContext(r.Context())

	var upstream *apperrors.UpstreamAuthError
	if apperrors.As(err, &upstream) {
		log.Error().
			Err(err).
			Int("upstream_status", upstream.StatusCode).
			Str("request_id", requestID).
			Msg("token exchange rejected upstream")
		writeError(w, http.StatusBadGateway, "upstream_auth_error", "Failed to obtain delegated access")
		return
	}
	if apperrors.Is(err, apperrors.ErrSigning) {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Msg("assertion signing failed")
		writeError(w, http.StatusBadGateway, "upstream_auth_error", "Failed to obtain delegated access")
		return
	}

	log.Error().
		Err(err).
		Str("request_id", requestID).
		Msg("backend call failed")
	writeError(w, http.StatusInternalServerError, "server_error", "")
}
