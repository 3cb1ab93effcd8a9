package httptransport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
	"github.com/d4rken/cwa-app-android/pkg/requestcontext"
)

// SubmissionHandler drives test registration and result polling.
type SubmissionHandler struct {
	polling  PollingService
	settings SubmissionSettings
	logger   *slog.Logger
}

func NewSubmissionHandler(polling PollingService, settings SubmissionSettings, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{polling: polling, settings: settings, logger: logger}
}

func (h *SubmissionHandler) Register(r chi.Router) {
	r.Post("/submission/registration", h.handleRegister)
	r.Get("/submission/polling", h.handleState)
	r.Post("/submission/polling/run", h.handleRun)
	r.Post("/submission/result-viewed", h.handleResultViewed)
}

type registerRequest struct {
	RegistrationToken string `json:"registration_token"`
}

type runResponse struct {
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// handleRegister stores a new registration token and starts polling for it.
func (h *SubmissionHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[registerRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	token := strings.TrimSpace(req.RegistrationToken)
	if token == "" {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "registration token is required"))
		return
	}
	if err := h.settings.SetRegistrationToken(ctx, token); err != nil {
		writeError(w, err)
		return
	}
	if err := h.polling.StartPolling(ctx); err != nil {
		h.logger.ErrorContext(ctx, "start polling failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *SubmissionHandler) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.polling.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

// handleRun performs one poll outside the schedule and reports its outcome.
func (h *SubmissionHandler) handleRun(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.polling.RunOnce(r.Context(), 0)
	resp := runResponse{Outcome: outcome.String()}
	if err != nil {
		resp.Error = err.Error()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *SubmissionHandler) handleResultViewed(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.SetResultViewed(r.Context(), true); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
