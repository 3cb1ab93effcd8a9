package httptransport

import (
	"context"

	"github.com/d4rken/cwa-app-android/internal/admission"
	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/certificates"
	checkinModels "github.com/d4rken/cwa-app-android/internal/checkin/models"
	testresultModels "github.com/d4rken/cwa-app-android/internal/testresult/models"
	"github.com/d4rken/cwa-app-android/internal/wallet"
	"github.com/d4rken/cwa-app-android/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// WalletService recomputes and exposes wallet infos.
type WalletService interface {
	Recompute(ctx context.Context, sel wallet.PersonSelection) (*wallet.WalletInfo, error)
	RecomputeAll(ctx context.Context) (map[string]error, error)
	Clear(ctx context.Context)
	RemovePerson(ctx context.Context, id domain.PersonID)
	WalletInfos() map[string]*wallet.WalletInfo
}

// CertificateStore holds the imported certificates.
type CertificateStore interface {
	Snapshot(ctx context.Context) (certificates.Set, error)
	Put(certs ...certificates.Certificate)
	Remove(id domain.CertificateID) error
	RemovePerson(id domain.PersonID)
}

// RulesetStore holds the current rule configuration.
type RulesetStore interface {
	Latest() *ruleset.RuleConfiguration
	Update(ctx context.Context, raw []byte) error
}

// ScenarioStore holds admission scenarios and the user's pick.
type ScenarioStore interface {
	Scenarios(ctx context.Context) *admission.ScenarioSet
	Save(ctx context.Context, set admission.ScenarioSet) error
	SelectedScenarioID(ctx context.Context) (string, error)
	SelectScenario(ctx context.Context, identifier string) error
}

// CheckInService manages check-ins.
type CheckInService interface {
	List(ctx context.Context) ([]checkinModels.CheckIn, error)
	Add(ctx context.Context, req checkinModels.Request) (checkinModels.CheckIn, error)
	Checkout(ctx context.Context, id domain.CheckInID) error
	Delete(ctx context.Context, ids []domain.CheckInID) error
}

// PollingService drives test result polling.
type PollingService interface {
	StartPolling(ctx context.Context) error
	RunOnce(ctx context.Context, runAttemptCount int) (testresultModels.Outcome, error)
	State(ctx context.Context) (testresultModels.PollingState, error)
}

// SubmissionSettings are the user-facing submission flags.
type SubmissionSettings interface {
	SetRegistrationToken(ctx context.Context, token string) error
	SetResultViewed(ctx context.Context, viewed bool) error
}
