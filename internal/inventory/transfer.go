package inventory

import (
	"context"
	"strings"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/ident"
	"restoran-inventory/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TransferRequest struct {
	ItemID     string
	FromBranch string
	ToBranch   string
	Quantity   int
	Unit       string
}

func (r TransferRequest) validate() error {
	if r.Quantity <= 0 {
		return apperr.Invalid("quantity must be greater than 0, got %d", r.Quantity)
	}
	if strings.TrimSpace(r.ItemID) == "" {
		return apperr.Invalid("item_id is required")
	}
	if strings.TrimSpace(r.FromBranch) == "" || strings.TrimSpace(r.ToBranch) == "" {
		return apperr.Invalid("from_branch and to_branch are required")
	}
	if r.FromBranch == r.ToBranch {
		return apperr.Invalid("from_branch and to_branch must differ, both are %s", r.FromBranch)
	}
	return nil
}

// Transfer moves quantity of an item between two branches and appends the
// transfer record. Debit, credit and record are committed together or not at all.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*models.Transfer, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var transfer models.Transfer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		available, _, err := quantityAt(ctx, tx, req.ItemID, req.FromBranch)
		if err != nil {
			return err
		}
		if available < req.Quantity {
			return &apperr.InsufficientStockError{
				ItemID:    req.ItemID,
				BranchID:  req.FromBranch,
				Available: available,
				Requested: req.Quantity,
			}
		}

		if err := s.ledger.StockOut(ctx, tx, req.ItemID, req.FromBranch, req.Quantity); err != nil {
			return err
		}
		if err := s.ledger.StockIn(ctx, tx, req.ItemID, req.ToBranch, req.Quantity); err != nil {
			return err
		}

		id, err := nextTransferID(ctx, tx)
		if err != nil {
			return err
		}

		transfer = models.Transfer{
			TransferID:   id,
			ItemID:       req.ItemID,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
			FromBranch:   req.FromBranch,
			ToBranch:     req.ToBranch,
			TransferDate: s.now(),
		}
		if err := tx.WithContext(ctx).Create(&transfer).Error; err != nil {
			return apperr.Storage("append transfer", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("transfer rolled back",
			zap.String("item_id", req.ItemID),
			zap.String("from_branch", req.FromBranch),
			zap.String("to_branch", req.ToBranch),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return nil, apperr.Storage("transfer", err)
	}

	s.log.Info("stock transferred",
		zap.String("transfer_id", transfer.TransferID),
		zap.String("item_id", transfer.ItemID),
		zap.String("from_branch", transfer.FromBranch),
		zap.String("to_branch", transfer.ToBranch),
		zap.Int("quantity", transfer.Quantity))
	return &transfer, nil
}

// nextTransferID derives T#### from the greatest transfer id visible to tx and
// checks it is still free. The primary key catches any race left after that.
func nextTransferID(ctx context.Context, tx *gorm.DB) (string, error) {
	last, err := ident.LastID(ctx, tx, &models.Transfer{}, "transfer_id")
	if err != nil {
		return "", apperr.Storage("read last transfer id", err)
	}
	id := ident.Next(ident.TransferPrefix, last)

	var taken int64
	if err := tx.WithContext(ctx).Model(&models.Transfer{}).Where("transfer_id = ?", id).Count(&taken).Error; err != nil {
		return "", apperr.Storage("check transfer id", err)
	}
	if taken > 0 {
		return "", apperr.Storage("generate transfer id", gorm.ErrDuplicatedKey)
	}
	return id, nil
}
