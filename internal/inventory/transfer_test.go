package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingCredit debits normally and fails every credit.
type failingCredit struct {
	*Ledger
}

func (failingCredit) StockIn(context.Context, *gorm.DB, string, string, int) error {
	return errors.New("disk full")
}

func TestTransferMovesStockAndRecordsIt(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	setStock(t, db, "I0001", "B0002", 1)

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	svc := NewService(db, nil, WithClock(func() time.Time { return now }))

	tr, err := svc.Transfer(context.Background(), TransferRequest{
		ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 4, Unit: "kg",
	})
	require.NoError(t, err)

	assert.Equal(t, "T0001", tr.TransferID)
	assert.Equal(t, 4, tr.Quantity)
	assert.Equal(t, "kg", tr.Unit)
	assert.True(t, now.Equal(tr.TransferDate))

	before := 10 + 1
	after := quantity(t, svc, "I0001", "B0001") + quantity(t, svc, "I0001", "B0002")
	assert.Equal(t, before, after)
	assert.Equal(t, 6, quantity(t, svc, "I0001", "B0001"))
	assert.Equal(t, 5, quantity(t, svc, "I0001", "B0002"))
}

func TestTransferCreatesDestinationRow(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	svc := NewService(db, nil)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 10, Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, quantity(t, svc, "I0001", "B0001"))
	assert.Equal(t, 10, quantity(t, svc, "I0001", "B0002"))
}

func TestTransferIDsAreSequential(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	require.NoError(t, db.Create(&models.Transfer{
		TransferID: "T0041", ItemID: "I0001", Quantity: 1, FromBranch: "B0002", ToBranch: "B0001",
		TransferDate: time.Now().Add(-time.Hour),
	}).Error)
	svc := NewService(db, nil)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		tr, err := svc.Transfer(context.Background(), TransferRequest{
			ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 1, Unit: "kg",
		})
		require.NoError(t, err)
		ids = append(ids, tr.TransferID)
	}
	assert.Equal(t, []string{"T0042", "T0043", "T0044"}, ids)
}

func TestTransferInsufficientStock(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 2)
	svc := NewService(db, nil)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 5, Unit: "kg",
	})

	var ise *apperr.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, "B0001", ise.BranchID)

	assert.Equal(t, 2, quantity(t, svc, "I0001", "B0001"))
	assert.Equal(t, 0, quantity(t, svc, "I0001", "B0002"))
	assert.Zero(t, transferCount(t, db))
}

func TestTransferFromBranchWithoutStock(t *testing.T) {
	svc := NewService(newFixture(t), nil)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		ItemID: "I0001", FromBranch: "B0002", ToBranch: "B0001", Quantity: 1,
	})
	var ise *apperr.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 0, ise.Available)
}

func TestTransferRollsBackWhenCreditFails(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	svc := NewService(db, nil, WithLedger(failingCredit{NewLedger()}))

	_, err := svc.Transfer(context.Background(), TransferRequest{
		ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 4, Unit: "kg",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.ErrorContains(t, err, "disk full")

	assert.Equal(t, 10, quantity(t, svc, "I0001", "B0001"))
	assert.Equal(t, 0, quantity(t, svc, "I0001", "B0002"))
	assert.Zero(t, transferCount(t, db))
}

func TestTransferRollsBackWhenDestinationMissing(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	svc := NewService(db, nil)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0404", Quantity: 4,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 10, quantity(t, svc, "I0001", "B0001"))
	assert.Zero(t, transferCount(t, db))
}

func TestTransferValidation(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	svc := NewService(db, nil)

	testCases := []struct {
		name string
		req  TransferRequest
	}{
		{"zero quantity", TransferRequest{ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 0}},
		{"negative quantity", TransferRequest{ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: -3}},
		{"missing item", TransferRequest{FromBranch: "B0001", ToBranch: "B0002", Quantity: 1}},
		{"missing branch", TransferRequest{ItemID: "I0001", FromBranch: "B0001", Quantity: 1}},
		{"same branch", TransferRequest{ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0001", Quantity: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Transfer(context.Background(), tc.req)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		})
	}
	assert.Equal(t, 10, quantity(t, svc, "I0001", "B0001"))
	assert.Zero(t, transferCount(t, db))
}

func TestConcurrentTransfersConserveStock(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)
	setStock(t, db, "I0001", "B0002", 0)
	svc := NewService(db, nil)

	const workers = 15
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok           int
		insufficient int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transfer(context.Background(), TransferRequest{
				ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 1, Unit: "kg",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperr.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 5, insufficient)
	assert.Equal(t, 0, quantity(t, svc, "I0001", "B0001"))
	assert.Equal(t, 10, quantity(t, svc, "I0001", "B0002"))
	assert.Equal(t, int64(10), transferCount(t, db))
}

func TestTransferHistoryNewestFirst(t *testing.T) {
	db := newFixture(t)
	setStock(t, db, "I0001", "B0001", 10)

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(db, nil, WithClock(func() time.Time {
		clock = clock.Add(24 * time.Hour)
		return clock
	}))
	for i := 0; i < 3; i++ {
		_, err := svc.Transfer(context.Background(), TransferRequest{
			ItemID: "I0001", FromBranch: "B0001", ToBranch: "B0002", Quantity: 1,
		})
		require.NoError(t, err)
	}

	history, err := svc.TransferHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "T0003", history[0].TransferID)
	assert.Equal(t, "T0001", history[2].TransferID)
}
