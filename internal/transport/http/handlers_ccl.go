package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/d4rken/cwa-app-android/internal/admission"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
	"github.com/d4rken/cwa-app-android/pkg/requestcontext"
)

// CCLHandler exposes the rule configuration and admission scenarios.
type CCLHandler struct {
	rules     RulesetStore
	scenarios ScenarioStore
	logger    *slog.Logger
}

func NewCCLHandler(rules RulesetStore, scenarios ScenarioStore, logger *slog.Logger) *CCLHandler {
	return &CCLHandler{rules: rules, scenarios: scenarios, logger: logger}
}

func (h *CCLHandler) Register(r chi.Router) {
	r.Get("/ccl/config", h.handleGetConfig)
	r.Put("/ccl/config", h.handleUpdateConfig)
	r.Get("/admission/scenarios", h.handleGetScenarios)
	r.Put("/admission/scenarios", h.handleSaveScenarios)
	r.Put("/admission/selection", h.handleSelectScenario)
}

type configSummary struct {
	Version string   `json:"version"`
	Rules   []string `json:"rules"`
}

type scenariosResponse struct {
	Scenarios  *admission.ScenarioSet `json:"scenarios"`
	SelectedID string                 `json:"selected_id,omitempty"`
}

type selectScenarioRequest struct {
	Identifier string `json:"identifier"`
}

func (h *CCLHandler) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	cfg := h.rules.Latest()
	if cfg == nil {
		writeError(w, dErrors.New(dErrors.CodeNotFound, "no rule configuration loaded"))
		return
	}
	summary := configSummary{Version: cfg.Version, Rules: make([]string, 0, len(cfg.Rules))}
	for _, rule := range cfg.Rules {
		summary.Rules = append(summary.Rules, rule.ID)
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *CCLHandler) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw, err := httputil.ReadBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.rules.Update(ctx, raw); err != nil {
		h.logger.WarnContext(ctx, "rule configuration rejected",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CCLHandler) handleGetScenarios(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	selected, err := h.scenarios.SelectedScenarioID(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scenariosResponse{
		Scenarios:  h.scenarios.Scenarios(ctx),
		SelectedID: selected,
	})
}

func (h *CCLHandler) handleSaveScenarios(w http.ResponseWriter, r *http.Request) {
	set, err := httputil.Decode[admission.ScenarioSet](r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.scenarios.Save(r.Context(), set); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectScenario stores the user's pick. An empty identifier clears it;
// an unknown one is rejected so evaluation never silently falls back.
func (h *CCLHandler) handleSelectScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[selectScenarioRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Identifier != "" {
		if _, ok := h.scenarios.Scenarios(ctx).Find(req.Identifier); !ok {
			writeError(w, dErrors.New(dErrors.CodeNotFound, "unknown scenario "+req.Identifier))
			return
		}
	}
	if err := h.scenarios.SelectScenario(ctx, req.Identifier); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
