// AngelaMos | 2026
// status_test.go

package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/core"
)

func TestStatusLifecycle(t *testing.T) {
	require.NoError(t, ValidateTransition(StatusDraft, StatusSent))
	require.NoError(t, ValidateTransition(StatusSent, StatusPaid))
	require.NoError(t, ValidateTransition(StatusSent, StatusOverdue))
	require.NoError(t, ValidateTransition(StatusOverdue, StatusPaid))
	require.NoError(t, ValidateTransition(StatusDraft, StatusCancelled))
}

func TestDraftCannotSkipToPaid(t *testing.T) {
	err := ValidateTransition(StatusDraft, StatusPaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Contains(t, err.Error(), "DRAFT")
	assert.Contains(t, err.Error(), "PAID")
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	targets := []Status{
		StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled,
	}

	for _, terminal := range []Status{StatusPaid, StatusCancelled} {
		for _, target := range targets {
			err := ValidateTransition(terminal, target)
			assert.ErrorIs(t, err, core.ErrForbidden,
				"%s -> %s should be refused", terminal, target)
		}
	}
}

func TestUnknownStatusIsValidationError(t *testing.T) {
	err := ValidateTransition(StatusDraft, Status("ARCHIVED"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestEditableAndDeletableGates(t *testing.T) {
	assert.True(t, StatusDraft.Editable())
	assert.False(t, StatusSent.Editable())
	assert.False(t, StatusPaid.Editable())

	assert.True(t, StatusDraft.Deletable())
	assert.True(t, StatusCancelled.Deletable())
	assert.False(t, StatusSent.Deletable())
	assert.False(t, StatusOverdue.Deletable())
	assert.False(t, StatusPaid.Deletable())
}
