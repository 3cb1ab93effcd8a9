package httptransport

import (
	"errors"
	"net/http"

	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/testresult"
	"github.com/d4rken/cwa-app-android/internal/wallet"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

// writeError gives package-level errors a code before the envelope is written.
// Errors that already carry a code pass through.
func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, classify(err))
}

func classify(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "backend unavailable")
	case errors.Is(err, ruleset.ErrParse):
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, err.Error())
	case errors.Is(err, testresult.ErrNoRegistrationToken):
		return dErrors.Wrap(err, dErrors.CodeConflict, "no registration token set")
	case errors.Is(err, wallet.ErrSuperseded):
		return dErrors.Wrap(err, dErrors.CodeConflict, "evaluation superseded, retry")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
	}
}
