package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/itchan-dev/mediameta/backend/internal/service"
	"github.com/itchan-dev/mediameta/shared/config"
	"github.com/itchan-dev/mediameta/shared/logger"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	attachment service.AttachmentService
	cfg        *config.Config
	health     HealthChecker
	locales    []string
}

func New(attachment service.AttachmentService, cfg *config.Config, health HealthChecker, locales []string) *Handler {
	return &Handler{attachment, cfg, health, locales}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
