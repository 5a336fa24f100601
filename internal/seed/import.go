package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"restoran-inventory/internal/logger"
	"restoran-inventory/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	BranchesFile  = "Branches.txt"
	ItemsFile     = "Items.txt"
	StocksFile    = "Stocks.txt"
	TransfersFile = "Transfer.txt"

	batchSize = 200
)

// Result counts the rows inserted per table; a table that already had rows
// reports 0.
type Result struct {
	Branches  int
	Items     int
	Stocks    int
	Transfers int
}

type Data struct {
	Branches  []models.Branch
	Items     []models.Item
	Stocks    []models.Stock
	Transfers []models.Transfer
}

func parseFile[T any](dir, name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

// Load parses all four files in dir.
func Load(dir string) (*Data, error) {
	var (
		d   Data
		err error
	)
	if d.Branches, err = parseFile(dir, BranchesFile, ParseBranches); err != nil {
		return nil, err
	}
	if d.Items, err = parseFile(dir, ItemsFile, ParseItems); err != nil {
		return nil, err
	}
	if d.Stocks, err = parseFile(dir, StocksFile, ParseStocks); err != nil {
		return nil, err
	}
	if d.Transfers, err = parseFile(dir, TransfersFile, ParseTransfers); err != nil {
		return nil, err
	}
	return &d, nil
}

// Import loads the seed files from dir and fills every table that is still
// empty, all in one transaction.
func Import(ctx context.Context, db *gorm.DB, dir string, log *zap.Logger) (*Result, error) {
	data, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return Apply(ctx, db, data, log)
}

func Apply(ctx context.Context, db *gorm.DB, data *Data, log *zap.Logger) (*Result, error) {
	log = logger.OrNop(log)
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if res.Branches, err = fillIfEmpty(tx, data.Branches); err != nil {
			return fmt.Errorf("branches: %w", err)
		}
		if res.Items, err = fillIfEmpty(tx, data.Items); err != nil {
			return fmt.Errorf("items: %w", err)
		}
		if res.Stocks, err = fillIfEmpty(tx, data.Stocks); err != nil {
			return fmt.Errorf("stocks: %w", err)
		}
		if res.Transfers, err = fillIfEmpty(tx, data.Transfers); err != nil {
			return fmt.Errorf("transfers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("seed data loaded",
		zap.Int("branches", res.Branches),
		zap.Int("items", res.Items),
		zap.Int("stocks", res.Stocks),
		zap.Int("transfers", res.Transfers),
	)
	return &res, nil
}

func fillIfEmpty[T any](tx *gorm.DB, rows []T) (int, error) {
	var n int64
	if err := tx.Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 || len(rows) == 0 {
		return 0, nil
	}
	if err := tx.CreateInBatches(&rows, batchSize).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

func writeFile(dir, name string, format func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := format(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}

// Export writes every table to dir in the seed format, so the output can be
// imported again.
func Export(ctx context.Context, db *gorm.DB, dir string) (*Result, error) {
	var d Data
	tx := db.WithContext(ctx)
	if err := tx.Order("branch_id").Find(&d.Branches).Error; err != nil {
		return nil, err
	}
	if err := tx.Order("item_id").Find(&d.Items).Error; err != nil {
		return nil, err
	}
	if err := tx.Order("stock_id").Find(&d.Stocks).Error; err != nil {
		return nil, err
	}
	if err := tx.Order("transfer_id").Find(&d.Transfers).Error; err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	writers := []struct {
		name   string
		format func(io.Writer) error
	}{
		{BranchesFile, func(w io.Writer) error { return FormatBranches(w, d.Branches) }},
		{ItemsFile, func(w io.Writer) error { return FormatItems(w, d.Items) }},
		{StocksFile, func(w io.Writer) error { return FormatStocks(w, d.Stocks) }},
		{TransfersFile, func(w io.Writer) error { return FormatTransfers(w, d.Transfers) }},
	}
	for _, wr := range writers {
		if err := writeFile(dir, wr.name, wr.format); err != nil {
			return nil, err
		}
	}

	return &Result{
		Branches:  len(d.Branches),
		Items:     len(d.Items),
		Stocks:    len(d.Stocks),
		Transfers: len(d.Transfers),
	}, nil
}
