package domain

import dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"

// CertificateType is the kind of health certificate a record represents.
// Invariant: the value must be one of the supported types.
//
// Usage: construct via ParseCertificateType at trust boundaries; direct casting
// bypasses validation.
type CertificateType string

const (
	CertificateTypeVaccination CertificateType = "vaccination"
	CertificateTypeTest        CertificateType = "test"
	CertificateTypeRecovery    CertificateType = "recovery"
)

var validCertificateTypes = map[CertificateType]bool{
	CertificateTypeVaccination: true,
	CertificateTypeTest:        true,
	CertificateTypeRecovery:    true,
}

// ParseCertificateType constructs a CertificateType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseCertificateType(s string) (CertificateType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "certificate type cannot be empty")
	}
	t := CertificateType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid certificate type")
	}
	return t, nil
}

// IsValid checks if the certificate type is one of the supported enum values.
func (t CertificateType) IsValid() bool {
	return validCertificateTypes[t]
}

func (t CertificateType) String() string {
	return string(t)
}
