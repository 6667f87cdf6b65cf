package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/sync"
)

// SyncRequest is the form payload posted by Power Automate
type SyncRequest struct {
	Since       string `json:"fechaSincronizacion"`
	Code        string `json:"codigoZoho"`
	NotifyEmail string `json:"correoNotificacion"`
}

// SyncResponse is returned after a completed run
type SyncResponse struct {
	Success string       `json:"success"`
	SyncID  string       `json:"sync_id"`
	Logs    string       `json:"logs_zoho_integration"`
	Summary sync.Summary `json:"summary"`
}

// runSync triggers a full sync and waits for it to finish
func (r *Router) runSync(w http.ResponseWriter, req *http.Request) {
	var body SyncRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if body.Since == "" || body.Code == "" {
		respondError(w, http.StatusBadRequest, "Faltan datos")
		return
	}

	result, err := r.syncer.Run(req.Context(), sync.Request{
		Since:       body.Since,
		Code:        body.Code,
		NotifyEmail: body.NotifyEmail,
	})
	if err != nil {
		status := syncErrorStatus(err)
		zerolog.Ctx(req.Context()).Error().Err(err).Int("status", status).Msg("❌ Sync failed")
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, SyncResponse{
		Success: "Datos sincronizados",
		SyncID:  result.SyncID,
		Logs:    result.Log.String(),
		Summary: result.Summary,
	})
}

func syncErrorStatus(err error) int {
	switch {
	case errors.Is(err, sync.ErrInvalidRequest):
		return http.StatusBadRequest
	case apperrors.IsDenied(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
