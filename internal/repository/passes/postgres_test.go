package passes

import (
	"context"
	"testing"

	passesdomain "club-app-go/internal/domain/passes"
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
	require.NoError(t, db.AutoMigrate(&passesdomain.Pass{}))
	return db
}

func seedPass(t *testing.T, repo *PostgresRepository, remaining int) *passesdomain.Pass {
	t.Helper()
	pass := &passesdomain.Pass{
		MemberID:          1,
		ItemName:          "10-visit pass",
		TotalQuantity:     10,
		RemainingQuantity: remaining,
		UnitPrice:         decimal.NewFromInt(15),
	}
	require.NoError(t, repo.CreatePass(context.Background(), pass))
	return pass
}

func TestDecrementRemaining(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))
	pass := seedPass(t, repo, 2)

	updated, err := repo.DecrementRemaining(context.Background(), pass.ID)
	require.NoError(t, err)
	require.True(t, updated)

	got, err := repo.GetPassByID(context.Background(), pass.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.RemainingQuantity)
	require.Equal(t, 10, got.TotalQuantity)
}

func TestDecrementRemainingStopsAtZero(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))
	pass := seedPass(t, repo, 1)

	updated, err := repo.DecrementRemaining(context.Background(), pass.ID)
	require.NoError(t, err)
	require.True(t, updated)

	// The guard rejects the second decrement instead of going negative.
	updated, err = repo.DecrementRemaining(context.Background(), pass.ID)
	require.NoError(t, err)
	require.False(t, updated)

	got, err := repo.GetPassByID(context.Background(), pass.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.RemainingQuantity)
}

func TestDecrementRemainingMissingPass(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))

	updated, err := repo.DecrementRemaining(context.Background(), 42)
	require.NoError(t, err)
	require.False(t, updated)
}

func TestDeletePass(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))
	pass := seedPass(t, repo, 5)

	deleted, err := repo.DeletePass(context.Background(), pass.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = repo.GetPassByID(context.Background(), pass.ID)
	require.ErrorIs(t, err, passesdomain.ErrPassNotFound)

	deleted, err = repo.DeletePass(context.Background(), pass.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestListPassesScopedByMember(t *testing.T) {
	repo := NewPostgres(setupTestDB(t))
	seedPass(t, repo, 10)

	other := &passesdomain.Pass{
		MemberID:          2,
		ItemName:          "5-visit pass",
		TotalQuantity:     5,
		RemainingQuantity: 5,
		UnitPrice:         decimal.NewFromInt(9),
	}
	require.NoError(t, repo.CreatePass(context.Background(), other))

	items, total, err := repo.ListPasses(context.Background(), passesdomain.ListFilter{MemberID: 2})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, other.ID, items[0].ID)

	items, total, err = repo.ListPasses(context.Background(), passesdomain.ListFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
}
