package admin

import (
	"context"
	"errors"
	"sort"
	"strings"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/ident"
	"restoran-inventory/internal/logger"
	"restoran-inventory/internal/models"
	"restoran-inventory/internal/report"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ItemService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewItemService(db *gorm.DB, log *zap.Logger) *ItemService {
	return &ItemService{db: db, log: logger.OrNop(log)}
}

type ItemInput struct {
	ItemID      string // generated when empty
	ItemName    string
	Category    string
	Unit        string
	Supplier    string
	CostPerUnit decimal.Decimal
	MinStock    int
	MaxStock    int
}

type ItemPatch struct {
	ItemName    *string
	Category    *string
	Unit        *string
	Supplier    *string
	CostPerUnit *decimal.Decimal
	MinStock    *int
	MaxStock    *int
}

func validateItem(it *models.Item) error {
	if it.ItemName == "" {
		return apperr.Invalid("item name is required")
	}
	if it.CostPerUnit.IsNegative() {
		return apperr.Invalid("cost per unit cannot be negative")
	}
	if it.MinStock < 0 || it.MaxStock < 0 {
		return apperr.Invalid("stock thresholds cannot be negative")
	}
	if it.MinStock > it.MaxStock {
		return apperr.Invalid("min stock %d is above max stock %d", it.MinStock, it.MaxStock)
	}
	return nil
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).Order("item_id").Find(&items).Error; err != nil {
		return nil, apperr.Storage("list items", err)
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := findItem(s.db.WithContext(ctx), itemID)
	if err != nil {
		return nil, apperr.Storage("get item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item %s", itemID)
	}
	return item, nil
}

func (s *ItemService) Create(ctx context.Context, in ItemInput) (*models.Item, error) {
	item := models.Item{
		ItemName:    strings.TrimSpace(in.ItemName),
		Category:    strings.TrimSpace(in.Category),
		Unit:        strings.TrimSpace(in.Unit),
		Supplier:    strings.TrimSpace(in.Supplier),
		CostPerUnit: in.CostPerUnit,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
	}
	if err := validateItem(&item); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := ident.LastID(ctx, tx, &models.Item{}, "item_id")
		if err != nil {
			return err
		}
		item.ID = ident.Resolve(in.ItemID, ident.ItemPrefix, last)

		existing, err := findItem(tx, item.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Invalid("item %s already exists", item.ID)
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, apperr.Storage("create item", err)
	}

	s.log.Info("item created", zap.String("item_id", item.ID))
	return &item, nil
}

// Update returns nil, nil when the item does not exist.
func (s *ItemService) Update(ctx context.Context, itemID string, patch ItemPatch) (*models.Item, error) {
	var updated *models.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := findItem(tx, itemID)
		if err != nil || item == nil {
			return err
		}

		if patch.ItemName != nil {
			item.ItemName = strings.TrimSpace(*patch.ItemName)
		}
		if patch.Category != nil {
			item.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Unit != nil {
			item.Unit = strings.TrimSpace(*patch.Unit)
		}
		if patch.Supplier != nil {
			item.Supplier = strings.TrimSpace(*patch.Supplier)
		}
		if patch.CostPerUnit != nil {
			item.CostPerUnit = *patch.CostPerUnit
		}
		if patch.MinStock != nil {
			item.MinStock = *patch.MinStock
		}
		if patch.MaxStock != nil {
			item.MaxStock = *patch.MaxStock
		}
		if err := validateItem(item); err != nil {
			return err
		}

		if err := tx.Save(item).Error; err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, apperr.Storage("update item", err)
	}
	return updated, nil
}

// Delete is a no-op for a missing item and refuses one that is still stocked
// or appears in the transfer log.
func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for what, model := range map[string]any{"stock": &models.Stock{}, "transfers": &models.Transfer{}} {
			var n int64
			if err := tx.Model(model).Where("item_id = ?", itemID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return apperr.InUse("item %s still has %s", itemID, what)
			}
		}
		return tx.Delete(&models.Item{}, "item_id = ?", itemID).Error
	})
	if err != nil {
		return apperr.Storage("delete item", err)
	}
	return nil
}

// likeEscaper makes a keyword match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches keyword case-insensitively against name or category.
func (s *ItemService) Search(ctx context.Context, keyword string) ([]models.Item, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.Invalid("search keyword is required")
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
	var items []models.Item
	err := s.db.WithContext(ctx).
		Where(`LOWER(item_name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("item_id").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Storage("search items", err)
	}
	return items, nil
}

func (s *ItemService) AverageCostByCategory(ctx context.Context) ([]report.CategoryCostResponse, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.CategoryCosts(items), nil
}

// Expensive lists items costing at least threshold, most expensive first.
func (s *ItemService) Expensive(ctx context.Context, threshold decimal.Decimal) ([]models.Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.CostPerUnit.GreaterThanOrEqual(threshold) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CostPerUnit.GreaterThan(out[j].CostPerUnit)
	})
	return out, nil
}

func findItem(tx *gorm.DB, itemID string) (*models.Item, error) {
	var item models.Item
	err := tx.Where("item_id = ?", itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
