// Package report derives read-only views (low stock, overstock, per-branch
// totals, category costs, branch and stock reports) from a joined snapshot of
// stocks, items and branches. Nothing here touches the database except
// LoadSnapshot, and nothing here returns a domain error.
package report

import (
	"fmt"
	"sort"

	"restoran-inventory/internal/models"

	"github.com/shopspring/decimal"
)

// StockRow is one stock row with its item and branch. Item or Branch is nil
// when the referenced row does not exist.
type StockRow struct {
	Stock  models.Stock
	Item   *models.Item
	Branch *models.Branch
}

func (r StockRow) branchName() (string, bool) {
	if r.Branch == nil {
		return "", false
	}
	return r.Branch.BranchName, true
}

// LowStock returns rows whose quantity is strictly below the item's minimum.
func LowStock(rows []StockRow) []StockRow {
	out := make([]StockRow, 0)
	for _, r := range rows {
		if r.Item != nil && r.Stock.Quantity < r.Item.MinStock {
			out = append(out, r)
		}
	}
	return out
}

// Overstock returns rows whose quantity is strictly above the item's maximum.
func Overstock(rows []StockRow) []StockRow {
	out := make([]StockRow, 0)
	for _, r := range rows {
		if r.Item != nil && r.Stock.Quantity > r.Item.MaxStock {
			out = append(out, r)
		}
	}
	return out
}

// value is quantity * cost per unit, zero without an item.
func (r StockRow) value() decimal.Decimal {
	if r.Item == nil {
		return decimal.Zero
	}
	return r.Item.CostPerUnit.Mul(decimal.NewFromInt(int64(r.Stock.Quantity)))
}

type BranchSummary struct {
	Branch     string          `json:"branch"`
	TotalQty   int             `json:"total_qty"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventorySummary totals quantity and value (quantity * cost per unit) per
// branch name. Rows without a branch are skipped; a missing item counts as cost 0.
func InventorySummary(rows []StockRow) []BranchSummary {
	byBranch := make(map[string]*BranchSummary)
	for _, r := range rows {
		name, ok := r.branchName()
		if !ok {
			continue
		}
		s, ok := byBranch[name]
		if !ok {
			s = &BranchSummary{Branch: name, TotalValue: decimal.Zero}
			byBranch[name] = s
		}
		s.TotalQty += r.Stock.Quantity
		s.TotalValue = s.TotalValue.Add(r.value())
	}

	out := make([]BranchSummary, 0, len(byBranch))
	for _, s := range byBranch {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Branch < out[j].Branch })
	return out
}

// AverageCostByCategory averages CostPerUnit per exact category string.
func AverageCostByCategory(items []models.Item) map[string]decimal.Decimal {
	type acc struct {
		sum   decimal.Decimal
		count int64
	}
	groups := make(map[string]*acc)
	for _, it := range items {
		a, ok := groups[it.Category]
		if !ok {
			a = &acc{sum: decimal.Zero}
			groups[it.Category] = a
		}
		a.sum = a.sum.Add(it.CostPerUnit)
		a.count++
	}

	out := make(map[string]decimal.Decimal, len(groups))
	for cat, a := range groups {
		out[cat] = a.sum.Div(decimal.NewFromInt(a.count))
	}
	return out
}

type BranchReport struct {
	BranchCount       int     `json:"branch_count"`
	AvgStockPerBranch float64 `json:"avg_stock_per_branch"`
}

// BuildBranchReport averages quantity within each branch, then averages those
// per-branch averages. Rows missing their item or branch are ignored.
func BuildBranchReport(branchCount int, rows []StockRow) BranchReport {
	type acc struct {
		sum   int
		count int
	}
	groups := make(map[string]*acc)
	for _, r := range rows {
		name, ok := r.branchName()
		if !ok || r.Item == nil {
			continue
		}
		a, ok := groups[name]
		if !ok {
			a = &acc{}
			groups[name] = a
		}
		a.sum += r.Stock.Quantity
		a.count++
	}

	rep := BranchReport{BranchCount: branchCount}
	if len(groups) == 0 {
		return rep
	}
	var total float64
	for _, a := range groups {
		total += float64(a.sum) / float64(a.count)
	}
	rep.AvgStockPerBranch = total / float64(len(groups))
	return rep
}

func (r BranchReport) Summary() string {
	return fmt.Sprintf("[Branch Report]\nTotal Branches: %d\nAverage Stock per Branch: %.1f",
		r.BranchCount, r.AvgStockPerBranch)
}

type StockReport struct {
	TotalStocks   int `json:"total_stocks"`
	LowStockItems int `json:"low_stock_items"`
}

func BuildStockReport(rows []StockRow) StockReport {
	return StockReport{
		TotalStocks:   len(rows),
		LowStockItems: len(LowStock(rows)),
	}
}

func (r StockReport) Summary() string {
	return fmt.Sprintf("[Stock Report]\nTotal Stocks: %d\nLow Stock Items: %d", r.TotalStocks, r.LowStockItems)
}
