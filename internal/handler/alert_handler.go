package handler

import (
	"net/http"

	"supermanager/internal/notification"

	"github.com/rs/zerolog"
)

// AlertHandler exposes recent alerts and the notification settings.
type AlertHandler struct {
	notifier *notification.Notifier
	sink     *notification.MemorySink
	logger   zerolog.Logger
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(notifier *notification.Notifier, sink *notification.MemorySink, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		notifier: notifier,
		sink:     sink,
		logger:   logger.With().Str("handler", "alert").Logger(),
	}
}

// List handles GET /api/alerts, newest first.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts := h.sink.Recent()
	if alerts == nil {
		alerts = []notification.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// GetSettings handles GET /api/alerts/settings.
func (h *AlertHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.notifier.Settings())
}

// UpdateSettings handles PUT /api/alerts/settings. The new settings
// replace the old ones and the schedule is rebuilt.
func (h *AlertHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings notification.Settings
	if err := decodeJSON(r, &settings); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.notifier.UpdateSettings(settings); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.notifier.Settings())
}
