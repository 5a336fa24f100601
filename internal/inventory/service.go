package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/logger"
	"restoran-inventory/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the entry point the HTTP layer uses for stock movements and transfers.
type Service struct {
	db     *gorm.DB
	ledger StockMover
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithLedger replaces the default Ledger, e.g. to inject failures in tests.
func WithLedger(l StockMover) Option {
	return func(s *Service) { s.ledger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *gorm.DB, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		db:     db,
		ledger: NewLedger(),
		log:    logger.OrNop(log),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StockIn runs a single stock-in in its own transaction.
func (s *Service) StockIn(ctx context.Context, itemID, branchID string, quantity int) error {
	if err := requireIDs(itemID, branchID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ledger.StockIn(ctx, tx, itemID, branchID, quantity)
	})
	if err != nil {
		s.log.Warn("stock in failed", zap.String("item_id", itemID), zap.String("branch_id", branchID),
			zap.Int("quantity", quantity), zap.Error(err))
		return apperr.Storage("stock in", err)
	}
	s.log.Info("stock in", zap.String("item_id", itemID), zap.String("branch_id", branchID), zap.Int("quantity", quantity))
	return nil
}

// StockOut runs a single stock-out in its own transaction.
func (s *Service) StockOut(ctx context.Context, itemID, branchID string, quantity int) error {
	if err := requireIDs(itemID, branchID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.ledger.StockOut(ctx, tx, itemID, branchID, quantity)
	})
	if err != nil {
		s.log.Warn("stock out failed", zap.String("item_id", itemID), zap.String("branch_id", branchID),
			zap.Int("quantity", quantity), zap.Error(err))
		return apperr.Storage("stock out", err)
	}
	s.log.Info("stock out", zap.String("item_id", itemID), zap.String("branch_id", branchID), zap.Int("quantity", quantity))
	return nil
}

// Quantity returns the stock held for (item, branch), 0 when there is no row.
func (s *Service) Quantity(ctx context.Context, itemID, branchID string) (int, error) {
	q, _, err := quantityAt(ctx, s.db, itemID, branchID)
	return q, err
}

// ListStocks returns stock rows with their item and branch joined. An empty
// branchID lists every branch.
func (s *Service) ListStocks(ctx context.Context, branchID string) ([]models.Stock, error) {
	q := s.db.WithContext(ctx).
		Joins("Item").
		Joins("Branch")
	if branchID != "" {
		q = q.Where("stocks.branch_id = ?", branchID)
	}

	var stocks []models.Stock
	err := q.Order("stocks.branch_id asc, stocks.item_id asc").Find(&stocks).Error
	if err != nil {
		return nil, apperr.Storage("list stocks", err)
	}
	return stocks, nil
}

func (s *Service) GetStock(ctx context.Context, stockID string) (*models.Stock, error) {
	if strings.TrimSpace(stockID) == "" {
		return nil, apperr.Invalid("stock id is required")
	}
	var stock models.Stock
	err := s.db.WithContext(ctx).
		Joins("Item").
		Joins("Branch").
		Where("stocks.stock_id = ?", stockID).
		Take(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("stock %s", stockID)
	}
	if err != nil {
		return nil, apperr.Storage("get stock", err)
	}
	return &stock, nil
}

// TransferHistory lists transfers, newest first.
func (s *Service) TransferHistory(ctx context.Context) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := s.db.WithContext(ctx).
		Order("transfer_date desc, transfer_id desc").
		Find(&transfers).Error
	if err != nil {
		return nil, apperr.Storage("transfer history", err)
	}
	return transfers, nil
}

func requireIDs(itemID, branchID string) error {
	if strings.TrimSpace(itemID) == "" {
		return apperr.Invalid("item_id is required")
	}
	if strings.TrimSpace(branchID) == "" {
		return apperr.Invalid("branch_id is required")
	}
	return nil
}
