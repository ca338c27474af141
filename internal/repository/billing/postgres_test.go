package billing

import (
	"context"
	"testing"
	"time"

	billingdomain "club-app-go/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&billingdomain.Invoice{}))
	return db
}

func seedInvoice(t *testing.T, repo *PostgresRepository, status billingdomain.PaymentStatus) *billingdomain.Invoice {
	t.Helper()
	invoice := &billingdomain.Invoice{
		PurchaseID:    1,
		MemberID:      1,
		MemberName:    "Alex",
		ItemName:      "10-visit pass",
		UnitPrice:     decimal.NewFromInt(15),
		Quantity:      10,
		PurchasedAt:   time.Now().UTC(),
		PaymentMethod: "card",
		PaymentStatus: status,
		TransactionID: "txn-test",
	}
	require.NoError(t, repo.CreateInvoice(context.Background(), invoice))
	return invoice
}

func TestRequestRefundGuardedByPaid(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))

	paid := seedInvoice(t, repo, billingdomain.StatusPaid)
	pending := seedInvoice(t, repo, billingdomain.StatusPending)

	updated, err := repo.RequestRefund(context.Background(), paid.ID, "duplicate charge")
	require.NoError(t, err)
	require.True(t, updated)

	got, err := repo.GetInvoiceByID(context.Background(), paid.ID)
	require.NoError(t, err)
	require.Equal(t, billingdomain.StatusRefundRequested, got.PaymentStatus)
	require.Equal(t, "duplicate charge", got.RefundReason)

	updated, err = repo.RequestRefund(context.Background(), pending.ID, "nope")
	require.NoError(t, err)
	require.False(t, updated)

	got, err = repo.GetInvoiceByID(context.Background(), pending.ID)
	require.NoError(t, err)
	require.Equal(t, billingdomain.StatusPending, got.PaymentStatus)
	require.Empty(t, got.RefundReason)
}

func TestRequestRefundNotRepeatable(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))
	invoice := seedInvoice(t, repo, billingdomain.StatusPaid)

	updated, err := repo.RequestRefund(context.Background(), invoice.ID, "first")
	require.NoError(t, err)
	require.True(t, updated)

	// Already refund_requested, the paid guard no longer matches.
	updated, err = repo.RequestRefund(context.Background(), invoice.ID, "second")
	require.NoError(t, err)
	require.False(t, updated)

	got, err := repo.GetInvoiceByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.RefundReason)
}

func TestResolveRefundRequest(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))
	invoice := seedInvoice(t, repo, billingdomain.StatusRefundRequested)
	invoice.RefundReason = "changed my mind"
	require.NoError(t, repo.db.Save(invoice).Error)

	updated, err := repo.ResolveRefundRequest(context.Background(), invoice.ID, billingdomain.StatusPaid, true)
	require.NoError(t, err)
	require.True(t, updated)

	got, err := repo.GetInvoiceByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Equal(t, billingdomain.StatusPaid, got.PaymentStatus)
	require.Empty(t, got.RefundReason)

	// Back to paid, the refund_requested guard no longer matches.
	updated, err = repo.ResolveRefundRequest(context.Background(), invoice.ID, billingdomain.StatusRefunded, false)
	require.NoError(t, err)
	require.False(t, updated)
}

func TestListInvoicesFilters(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))

	paid := seedInvoice(t, repo, billingdomain.StatusPaid)
	failed := seedInvoice(t, repo, billingdomain.StatusFailed)

	updated, err := repo.SetFlag(context.Background(), failed.ID, true, "card declined twice")
	require.NoError(t, err)
	require.True(t, updated)

	items, total, err := repo.ListInvoices(context.Background(), billingdomain.ListFilter{Status: billingdomain.StatusPaid})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, paid.ID, items[0].ID)

	flagged := true
	items, total, err = repo.ListInvoices(context.Background(), billingdomain.ListFilter{Flagged: &flagged})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, failed.ID, items[0].ID)
	require.Equal(t, "card declined twice", items[0].FlagReason)
}
