package http

import (
	"net/http"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, app.MsgAPIRunning, http.StatusOK)
}
