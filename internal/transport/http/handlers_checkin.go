package httptransport

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	checkinModels "github.com/d4rken/cwa-app-android/internal/checkin/models"
	"github.com/d4rken/cwa-app-android/pkg/domain"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
	"github.com/d4rken/cwa-app-android/pkg/requestcontext"
)

// CheckInHandler exposes the check-in collection.
type CheckInHandler struct {
	checkIns CheckInService
	logger   *slog.Logger
}

func NewCheckInHandler(checkIns CheckInService, logger *slog.Logger) *CheckInHandler {
	return &CheckInHandler{checkIns: checkIns, logger: logger}
}

func (h *CheckInHandler) Register(r chi.Router) {
	r.Get("/check-ins", h.handleList)
	r.Post("/check-ins", h.handleAdd)
	r.Post("/check-ins/{checkInID}/checkout", h.handleCheckout)
	r.Delete("/check-ins", h.handleDelete)
}

type addCheckInRequest struct {
	Location checkinModels.TraceLocation `json:"location"`
	Start    time.Time                   `json:"start"`
	End      time.Time                   `json:"end"`
}

type deleteCheckInsRequest struct {
	IDs []domain.CheckInID `json:"ids"`
}

func (h *CheckInHandler) handleList(w http.ResponseWriter, r *http.Request) {
	view, err := h.checkIns.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if view == nil {
		view = []checkinModels.CheckIn{}
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *CheckInHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[addCheckInRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.checkIns.Add(r.Context(), checkinModels.Request{
		Location: req.Location,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *CheckInHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseCheckInID(chi.URLParam(r, "checkInID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.checkIns.Checkout(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "checkout failed",
			"request_id", requestcontext.RequestID(ctx),
			"check_in_id", id.String(),
			"error", err,
		)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDelete removes the listed check-ins, or all of them when the body is
// empty or lists none.
func (h *CheckInHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	raw, err := httputil.ReadBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req deleteCheckInsRequest
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			writeError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}
	if err := h.checkIns.Delete(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
