// AngelaMos | 2026
// status.go

package invoice

import (
	"fmt"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusPaid      Status = "PAID"
	StatusOverdue   Status = "OVERDUE"
	StatusCancelled Status = "CANCELLED"
)

// transitions is the full whitelist; PAID and CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusSent, StatusCancelled},
	StatusSent:      {StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue:   {StatusPaid, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition rejects anything off the whitelist, naming both
// states so the caller sees exactly what was refused.
func ValidateTransition(from, to Status) error {
	if !to.Valid() {
		return core.ValidationError(
			fmt.Sprintf("unknown invoice status %q", to),
		)
	}

	if !from.CanTransitionTo(to) {
		return core.ForbiddenError(fmt.Sprintf(
			"cannot change invoice status from %s to %s",
			from, to,
		))
	}

	return nil
}

// Editable reports whether invoice content may still change.
func (s Status) Editable() bool {
	return s == StatusDraft
}

// Deletable permits removing drafts and cancelled invoices only.
func (s Status) Deletable() bool {
	return s == StatusDraft || s == StatusCancelled
}
