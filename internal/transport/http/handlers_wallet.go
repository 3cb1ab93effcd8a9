package httptransport

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/d4rken/cwa-app-android/internal/certificates"
	"github.com/d4rken/cwa-app-android/internal/wallet"
	"github.com/d4rken/cwa-app-android/pkg/domain"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
	"github.com/d4rken/cwa-app-android/pkg/requestcontext"
)

// WalletHandler exposes wallet infos and certificate import.
type WalletHandler struct {
	wallet WalletService
	certs  CertificateStore
	logger *slog.Logger
}

func NewWalletHandler(wallet WalletService, certs CertificateStore, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{wallet: wallet, certs: certs, logger: logger}
}

// Register mounts wallet and certificate endpoints.
func (h *WalletHandler) Register(r chi.Router) {
	r.Get("/wallet", h.handleList)
	r.Post("/wallet/recompute", h.handleRecompute)
	r.Post("/wallet/recompute-all", h.handleRecomputeAll)
	r.Delete("/wallet", h.handleClear)

	r.Get("/certificates", h.handleListCertificates)
	r.Put("/certificates", h.handlePutCertificates)
	r.Delete("/certificates/{certificateID}", h.handleRemoveCertificate)
	r.Delete("/persons/{personID}", h.handleRemovePerson)
}

type recomputeRequest struct {
	Selection string `json:"selection"`
}

type recomputeAllResponse struct {
	Evaluated []string          `json:"evaluated"`
	Failed    map[string]string `json:"failed"`
}

func (h *WalletHandler) handleList(w http.ResponseWriter, _ *http.Request) {
	infos := h.wallet.WalletInfos()
	if infos == nil {
		infos = map[string]*wallet.WalletInfo{}
	}
	httputil.WriteJSON(w, http.StatusOK, infos)
}

func (h *WalletHandler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[recomputeRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}
	sel, err := wallet.ParseSelection(req.Selection)
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid selection"))
		return
	}

	info, err := h.wallet.Recompute(ctx, sel)
	if err != nil {
		h.logger.ErrorContext(ctx, "wallet recompute failed",
			"request_id", requestcontext.RequestID(ctx),
			"selection", sel.Key(),
			"error", err,
		)
		writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info)
}

func (h *WalletHandler) handleRecomputeAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results, err := h.wallet.RecomputeAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := recomputeAllResponse{Evaluated: []string{}, Failed: map[string]string{}}
	for key, err := range results {
		if err != nil {
			resp.Failed[key] = err.Error()
			continue
		}
		resp.Evaluated = append(resp.Evaluated, key)
	}
	sort.Strings(resp.Evaluated)
	if len(resp.Failed) > 0 {
		h.logger.WarnContext(ctx, "wallet recompute partially failed",
			"request_id", requestcontext.RequestID(ctx),
			"failed", len(resp.Failed),
		)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.wallet.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *WalletHandler) handleListCertificates(w http.ResponseWriter, r *http.Request) {
	set, err := h.certs.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	all := set.All()
	if all == nil {
		all = []certificates.Certificate{}
	}
	httputil.WriteJSON(w, http.StatusOK, all)
}

func (h *WalletHandler) handlePutCertificates(w http.ResponseWriter, r *http.Request) {
	certs, err := httputil.Decode[[]certificates.Certificate](r)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, c := range certs {
		if c.ID == "" {
			writeError(w, dErrors.New(dErrors.CodeInvalidInput, "certificate id is required"))
			return
		}
		if _, err := domain.ParsePersonID(string(c.Person)); err != nil {
			writeError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid person for "+string(c.ID)))
			return
		}
		if !c.Type.IsValid() {
			writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid certificate type for "+string(c.ID)))
			return
		}
	}
	h.certs.Put(certs...)
	w.WriteHeader(http.StatusNoContent)
}

func (h *WalletHandler) handleRemoveCertificate(w http.ResponseWriter, r *http.Request) {
	id := domain.CertificateID(chi.URLParam(r, "certificateID"))
	if err := h.certs.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WalletHandler) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid person"))
		return
	}
	h.certs.RemovePerson(id)
	h.wallet.RemovePerson(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
