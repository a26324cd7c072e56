// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type UsageStats struct {
	Users         int `db:"users"          json:"users"`
	VerifiedUsers int `db:"verified_users" json:"verified_users"`
	Documents     int `db:"documents"      json:"documents"`
	Invoices      int `db:"invoices"       json:"invoices"`
	PaidInvoices  int `db:"paid_invoices"  json:"paid_invoices"`
	Templates     int `db:"templates"      json:"templates"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) UsageCounter {
	return &repository{db: db}
}

func (r *repository) CountUsage(ctx context.Context) (*UsageStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE verified) AS verified_users,
			(SELECT COUNT(*) FROM documents) AS documents,
			(SELECT COUNT(*) FROM invoices) AS invoices,
			(SELECT COUNT(*) FROM invoices WHERE status = 'PAID') AS paid_invoices,
			(SELECT COUNT(*) FROM templates) AS templates`

	var stats UsageStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("count usage: %w", err)
	}

	return &stats, nil
}
