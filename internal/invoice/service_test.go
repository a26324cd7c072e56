// AngelaMos | 2026
// service_test.go

package invoice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/document"
)

type fakeRepo struct {
	mu       sync.Mutex
	invoices map[string]*Invoice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{invoices: make(map[string]*Invoice)}
}

func (r *fakeRepo) Create(_ context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	copied := *inv
	r.invoices[inv.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(
	_ context.Context,
	userID, id string,
) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[id]; ok && inv.UserID == userID {
		copied := *inv
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.invoices[inv.ID]; ok && stored.UserID == inv.UserID {
		inv.UpdatedAt = time.Now()
		copied := *inv
		r.invoices[inv.ID] = &copied
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeRepo) UpdateStatus(
	_ context.Context,
	userID, id string,
	status Status,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[id]; ok && inv.UserID == userID {
		inv.Status = status
		inv.UpdatedAt = time.Now()
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[id]; ok && inv.UserID == userID {
		delete(r.invoices, id)
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeRepo) List(
	_ context.Context,
	userID string,
	params ListInvoicesParams,
) ([]Invoice, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Invoice
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if params.Status != "" && string(inv.Status) != params.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, len(out), nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		CompanyName:   "Acme Corp",
		ClientName:    "Globex",
		Currency:      "USD",
		Items: []document.LineItemRequest{
			{Description: "Widgets", Quantity: dec("2"), UnitPrice: dec("10")},
			{Description: "Gadget", Quantity: dec("1"), UnitPrice: dec("5")},
			{Description: "Bolts", Quantity: dec("3"), UnitPrice: dec("2")},
		},
		Discount: dec("1"),
	}
}

func TestCreateStartsAsDraftWithComputedTotals(t *testing.T) {
	service := NewService(newFakeRepo())

	inv, err := service.Create(context.Background(), "u1", sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, inv.Status)
	assert.True(t, dec("31").Equal(inv.Subtotal), inv.Subtotal.String())
	assert.True(t, dec("6").Equal(inv.TaxAmount), inv.TaxAmount.String())
	assert.True(t, dec("36").Equal(inv.Total), inv.Total.String())
}

func TestUpdateRequiresDraft(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	inv, err := service.Create(ctx, "u1", sampleRequest())
	require.NoError(t, err)

	_, err = service.UpdateStatus(ctx, "u1", inv.ID, StatusSent)
	require.NoError(t, err)

	_, err = service.Update(ctx, "u1", inv.ID, sampleRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Contains(t, err.Error(), "SENT")
}

func TestUpdateRecomputesTotalsForDraft(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	inv, err := service.Create(ctx, "u1", sampleRequest())
	require.NoError(t, err)

	req := sampleRequest()
	req.Items = []document.LineItemRequest{
		{Description: "Only", Quantity: dec("1"), UnitPrice: dec("100")},
	}
	req.Discount = decimal.Zero

	updated, err := service.Update(ctx, "u1", inv.ID, req)
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(updated.Subtotal))
	assert.True(t, dec("120").Equal(updated.Total))
	assert.Equal(t, StatusDraft, updated.Status)
}

func TestDeleteGatedOnStatus(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	draft, err := service.Create(ctx, "u1", sampleRequest())
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, "u1", draft.ID))

	sent, err := service.Create(ctx, "u1", sampleRequest())
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, "u1", sent.ID, StatusSent)
	require.NoError(t, err)

	err = service.Delete(ctx, "u1", sent.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = service.UpdateStatus(ctx, "u1", sent.ID, StatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, service.Delete(ctx, "u1", sent.ID))
}

func TestStatusTransitionEnforced(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	inv, err := service.Create(ctx, "u1", sampleRequest())
	require.NoError(t, err)

	_, err = service.UpdateStatus(ctx, "u1", inv.ID, StatusPaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	updated, err := service.UpdateStatus(ctx, "u1", inv.ID, StatusSent)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, updated.Status)

	updated, err = service.UpdateStatus(ctx, "u1", inv.ID, StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, updated.Status)

	_, err = service.UpdateStatus(ctx, "u1", inv.ID, StatusDraft)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestForeignInvoiceIsNotFound(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	inv, err := service.Create(ctx, "owner", sampleRequest())
	require.NoError(t, err)

	_, err = service.Get(ctx, "intruder", inv.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = service.Delete(ctx, "intruder", inv.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = service.UpdateStatus(ctx, "intruder", inv.ID, StatusSent)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
