package auth

import (
	"github.com/sirupsen/logrus"

	"github.com/adamscao/certauth/internal/cert"
	"github.com/adamscao/certauth/internal/db/repository"
	"github.com/adamscao/certauth/internal/keys"
	"github.com/adamscao/certauth/internal/models"
	"github.com/adamscao/certauth/pkg/sshutil"
)

// Authenticator runs the certificate authentication pipeline at
// decision time: construct a certified key from the presented blob,
// validate it against the target username, and record the outcome.
// A nil audit repository disables persistence; decisions are still
// logged. A malformed certificate is a recorded failure, never a panic,
// so the surrounding authentication state machine can fall back to its
// next method.
type Authenticator struct {
	auditRepo *repository.AuditRepository
	log       *logrus.Logger
}

// NewAuthenticator creates an authenticator. Both arguments may be nil.
func NewAuthenticator(auditRepo *repository.AuditRepository, log *logrus.Logger) *Authenticator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Authenticator{auditRepo: auditRepo, log: log}
}

// Decision is the outcome of one authentication attempt. Key is set
// only when the verdict is valid; it is discarded when the attempt
// concludes.
type Decision struct {
	Verdict cert.Verdict
	Key     *keys.CertifiedKey
}

// Authorize builds a certified key from certBlob on top of base and
// validates it for username. Construction failures (not a buffer, not a
// certificate, malformed, unsupported key type) become invalid verdicts
// carrying the failure message verbatim.
func (a *Authenticator) Authorize(base keys.BaseKey, certBlob []byte, username string) Decision {
	return a.decide(models.ActionCertAuth, base, certBlob, username)
}

// Check validates certBlob for username without a base key, recording
// the decision under the cert_check action. Used by offline tooling.
func (a *Authenticator) Check(certBlob []byte, username string) cert.Verdict {
	return a.decide(models.ActionCertCheck, nil, certBlob, username).Verdict
}

func (a *Authenticator) decide(action string, base keys.BaseKey, certBlob []byte, username string) Decision {
	entry := &models.AuditLog{
		Action:   action,
		Username: username,
	}
	if certBlob != nil {
		entry.Fingerprint = sshutil.Fingerprint(certBlob)
	}

	key, err := keys.NewCertifiedKey(base, certBlob)
	if err != nil {
		verdict := cert.Validate(nil, err, username)
		a.record(entry, verdict)
		return Decision{Verdict: verdict}
	}

	c := key.Certificate()
	entry.Serial = c.Serial
	entry.KeyID = c.KeyID

	verdict := cert.Validate(c, nil, username)
	a.record(entry, verdict)

	if !verdict.Valid {
		return Decision{Verdict: verdict}
	}
	return Decision{Verdict: verdict, Key: key}
}

// record logs the decision and persists it when an audit repository is
// configured. Persistence is best-effort: a storage error must not turn
// a valid authentication into a failure.
func (a *Authenticator) record(entry *models.AuditLog, verdict cert.Verdict) {
	entry.Success = verdict.Valid
	entry.Reason = verdict.Reason

	fields := logrus.Fields{
		"action":      entry.Action,
		"username":    entry.Username,
		"fingerprint": entry.Fingerprint,
		"success":     entry.Success,
	}
	if entry.KeyID != "" {
		fields["key_id"] = entry.KeyID
		fields["serial"] = entry.Serial
	}

	if verdict.Valid {
		a.log.WithFields(fields).Info("certificate accepted")
	} else {
		fields["reason"] = entry.Reason
		a.log.WithFields(fields).Warn("certificate rejected")
	}

	if a.auditRepo == nil {
		return
	}
	if err := a.auditRepo.Create(entry); err != nil {
		a.log.WithError(err).Warn("failed to record audit entry")
	}
}
