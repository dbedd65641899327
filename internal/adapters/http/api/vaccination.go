package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/cowin/internal/adapters/cowin"
	"github.com/okian/cowin/pkg/logger"
)

// VaccinationHandler exposes the mapped upstream data as JSON.
type VaccinationHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewVaccinationHandler creates a vaccination data handler.
func NewVaccinationHandler(deps Dependencies, log logger.Logger) *VaccinationHandler {
	return &VaccinationHandler{deps: deps, log: log}
}

// HandleGet handles GET /api/vaccination. Upstream rejections map to 502.
func (h *VaccinationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	data, err := h.deps.FetchVaccinationData(r.Context())
	if err != nil {
		var fe *cowin.FetchError
		if errors.As(err, &fe) {
			writeError(w, http.StatusBadGateway, "upstream_error", fmt.Errorf("%w: status %d", ErrUpstream, fe.StatusCode))
			return
		}
		h.log.Error(r.Context(), "vaccination fetch failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
