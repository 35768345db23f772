package cert

import (
	"fmt"
	"strings"
	"time"
)

// timeNow is swapped out by tests that pin the validation clock.
var timeNow = time.Now

// Verdict is the result of validating a certificate against a target
// identity. Reason is populated only when Valid is false and is safe to
// log: it never contains signature bytes or key material.
type Verdict struct {
	Valid  bool
	Reason string
}

// Validate checks a decoded certificate against the current wall clock
// and the target username. A non-nil decodeErr (from Decode or
// construction) short-circuits into an invalid verdict carrying the
// error message verbatim.
//
// Checks are ordered and only the first failure is reported: expiry,
// then not-yet-valid, then principal membership. The validity window is
// half-open: valid iff validAfter <= now < validBefore, with a zero
// bound meaning unset. The principal check applies only to user
// certificates with a non-empty principal list; an empty list means the
// certificate is valid for any principal. Critical options and
// extensions are not enforced here; option policy belongs to the caller.
func Validate(c *Certificate, decodeErr error, username string) Verdict {
	if decodeErr != nil {
		return Verdict{Reason: decodeErr.Error()}
	}

	now := uint64(timeNow().Unix())

	if c.ValidBefore != 0 && now >= c.ValidBefore {
		return Verdict{Reason: "Certificate has expired"}
	}

	if c.ValidAfter != 0 && now < c.ValidAfter {
		return Verdict{Reason: "Certificate is not yet valid"}
	}

	if c.IsUser() && len(c.Principals) > 0 && !containsName(c.Principals, username) {
		return Verdict{Reason: fmt.Sprintf(
			"Certificate is not valid for user %q (accepted principals: %s)",
			username, strings.Join(c.Principals, ", "))}
	}

	return Verdict{Valid: true}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
