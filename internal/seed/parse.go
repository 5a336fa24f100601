// Package seed reads and writes the pipe-delimited bootstrap files
// (Branches.txt, Items.txt, Stocks.txt, Transfer.txt).
package seed

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"restoran-inventory/internal/models"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// readRecords splits every line on '|' and drops blank lines and lines with
// fewer than minFields fields.
func readRecords(r io.Reader, minFields int, fn func(line int, f []string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "|")
		if len(fields) < minFields {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(line, fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func ParseBranches(r io.Reader) ([]models.Branch, error) {
	var out []models.Branch
	err := readRecords(r, 5, func(_ int, f []string) error {
		out = append(out, models.Branch{
			ID:         f[0],
			BranchName: f[1],
			Address:    f[2],
			Postcode:   f[3],
			Phone:      f[4],
		})
		return nil
	})
	return out, err
}

func ParseItems(r io.Reader) ([]models.Item, error) {
	var out []models.Item
	err := readRecords(r, 8, func(_ int, f []string) error {
		cost, err := decimal.NewFromString(f[5])
		if err != nil {
			return fmt.Errorf("cost per unit %q: %w", f[5], err)
		}
		minStock, err := strconv.Atoi(f[6])
		if err != nil {
			return fmt.Errorf("min stock %q: %w", f[6], err)
		}
		maxStock, err := strconv.Atoi(f[7])
		if err != nil {
			return fmt.Errorf("max stock %q: %w", f[7], err)
		}
		out = append(out, models.Item{
			ID:          f[0],
			ItemName:    f[1],
			Category:    f[2],
			Unit:        f[3],
			Supplier:    f[4],
			CostPerUnit: cost,
			MinStock:    minStock,
			MaxStock:    maxStock,
		})
		return nil
	})
	return out, err
}

func ParseStocks(r io.Reader) ([]models.Stock, error) {
	var out []models.Stock
	err := readRecords(r, 4, func(_ int, f []string) error {
		qty, err := strconv.Atoi(f[3])
		if err != nil {
			return fmt.Errorf("quantity %q: %w", f[3], err)
		}
		if qty < 0 {
			return fmt.Errorf("quantity %d is negative", qty)
		}
		out = append(out, models.Stock{
			StockID:  f[0],
			ItemID:   f[1],
			BranchID: f[2],
			Quantity: qty,
		})
		return nil
	})
	return out, err
}

func ParseTransfers(r io.Reader) ([]models.Transfer, error) {
	var out []models.Transfer
	err := readRecords(r, 7, func(_ int, f []string) error {
		qty, err := parseWholeQuantity(f[2])
		if err != nil {
			return err
		}
		if qty <= 0 {
			return fmt.Errorf("quantity %d must be positive", qty)
		}
		date, err := time.Parse(dateLayout, f[6])
		if err != nil {
			return fmt.Errorf("transfer date %q: %w", f[6], err)
		}
		out = append(out, models.Transfer{
			TransferID:   f[0],
			ItemID:       f[1],
			Quantity:     qty,
			Unit:         f[3],
			FromBranch:   f[4],
			ToBranch:     f[5],
			TransferDate: date,
		})
		return nil
	})
	return out, err
}

// parseWholeQuantity accepts "5" as well as "5.0"; fractional transfer
// quantities are rejected.
func parseWholeQuantity(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", s, err)
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}
	return int(v), nil
}
