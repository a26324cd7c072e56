// AngelaMos | 2026
// service_test.go

package document

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type fakeRepo struct {
	mu   sync.Mutex
	docs map[string]*Document
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[string]*Document)}
}

func (r *fakeRepo) Create(_ context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(
	_ context.Context,
	userID, id string,
) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[id]; ok && d.UserID == userID {
		copied := *d
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[doc.ID]; ok && d.UserID == doc.UserID {
		doc.UpdatedAt = time.Now()
		copied := *doc
		r.docs[doc.ID] = &copied
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[id]; ok && d.UserID == userID {
		delete(r.docs, id)
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeRepo) List(
	_ context.Context,
	userID string,
	_ ListDocumentsParams,
) ([]Document, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Document
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, len(out), nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleRequest() CreateDocumentRequest {
	number := "DOC-001"
	return CreateDocumentRequest{
		Number:      &number,
		CompanyName: "Acme Corp",
		ClientName:  "Globex",
		Currency:    "USD",
		Items: []LineItemRequest{
			{Description: "Widgets", Quantity: dec("2"), UnitPrice: dec("10")},
			{Description: "Gadget", Quantity: dec("1"), UnitPrice: dec("5")},
			{Description: "Bolts", Quantity: dec("3"), UnitPrice: dec("2")},
		},
		Discount: dec("1"),
	}
}

func TestCreateComputesTotals(t *testing.T) {
	service := NewService(newFakeRepo())

	doc, err := service.Create(context.Background(), "u1", sampleRequest())
	require.NoError(t, err)

	assert.True(t, dec("31").Equal(doc.Subtotal), doc.Subtotal.String())
	assert.True(t, dec("1").Equal(doc.Discount))
	assert.True(t, dec("20").Equal(doc.TaxRate))
	assert.True(t, dec("6").Equal(doc.TaxAmount), doc.TaxAmount.String())
	assert.True(t, dec("36").Equal(doc.Total), doc.Total.String())

	require.Len(t, doc.Items, 3)
	assert.True(t, dec("20").Equal(doc.Items[0].Amount))
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	service := NewService(newFakeRepo())

	req := sampleRequest()
	req.Items[0].Quantity = dec("-1")

	_, err := service.Create(context.Background(), "u1", req)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	doc, err := service.Create(ctx, "u1", sampleRequest())
	require.NoError(t, err)

	req := sampleRequest()
	req.Items = []LineItemRequest{
		{Description: "Only", Quantity: dec("1"), UnitPrice: dec("100")},
	}
	req.Discount = decimal.Zero

	updated, err := service.Update(ctx, "u1", doc.ID, req)
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(updated.Subtotal))
	assert.True(t, dec("120").Equal(updated.Total))
}

func TestForeignDocumentIsNotFound(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	doc, err := service.Create(ctx, "owner", sampleRequest())
	require.NoError(t, err)

	_, err = service.Get(ctx, "intruder", doc.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = service.Delete(ctx, "intruder", doc.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = service.Duplicate(ctx, "intruder", doc.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDuplicateResetsNumberAndDate(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	past := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	req := sampleRequest()
	req.IssueDate = &past

	original, err := service.Create(ctx, "u1", req)
	require.NoError(t, err)

	dup, err := service.Duplicate(ctx, "u1", original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, dup.ID)
	assert.Nil(t, dup.Number)
	assert.WithinDuration(t, time.Now(), dup.IssueDate, time.Minute)

	assert.Equal(t, original.Items, dup.Items)
	assert.True(t, original.Subtotal.Equal(dup.Subtotal))
	assert.True(t, original.Total.Equal(dup.Total))

	// The original is untouched.
	stored, err := service.Get(ctx, "u1", original.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Number)
	assert.Equal(t, "DOC-001", *stored.Number)
	assert.Equal(t, past, stored.IssueDate)
}
