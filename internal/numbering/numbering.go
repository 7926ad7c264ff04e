// Package numbering defines the identifier format contracts. Uniqueness
// of the sequence itself is the persistence layer's guarantee; this
// package only formats what it is given. Internal numbers are a pure
// function of the external number so a retried derivation always lands on
// the same identifier.
package numbering

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Scope tags distinguish entity families inside internal numbers.
const (
	ScopeAccusation   = "ACU"
	ScopeCharge       = "LIQ"
	ScopePaymentOrder = "GIR"
)

// CaseNumber is the external, display-facing number: scope, year, then a
// zero-padded per-year sequence.
func CaseNumber(scope string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", scope, year, seq)
}

// InternalNumber derives the internal identifier deterministically from
// the external number and scope tag. Same inputs, same output.
func InternalNumber(caseNumber, scope string) string {
	sum := sha256.Sum256([]byte(scope + ":" + caseNumber))
	return scope + "-" + strings.ToUpper(hex.EncodeToString(sum[:4]))
}
