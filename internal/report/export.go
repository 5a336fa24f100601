package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const inventorySheet = "Inventory"

var inventoryHeaders = []string{
	"Branch ID", "Branch", "Item ID", "Item", "Category", "Unit",
	"Quantity", "Min", "Max", "Cost/Unit", "Value", "Status",
}

// WriteInventoryWorkbook writes one sheet with a row per stock, flagging low
// and overstocked rows.
func WriteInventoryWorkbook(w io.Writer, rows []StockRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range inventoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(inventorySheet, cell, h); err != nil {
			return err
		}
	}

	for idx, r := range rows {
		values := []any{r.Stock.BranchID, "", r.Stock.ItemID, "", "", "", r.Stock.Quantity, "", "", "", "", stockStatus(r)}
		if r.Branch != nil {
			values[1] = r.Branch.BranchName
		}
		if r.Item != nil {
			cost, _ := r.Item.CostPerUnit.Float64()
			value, _ := r.value().Float64()
			values[3] = r.Item.ItemName
			values[4] = r.Item.Category
			values[5] = r.Item.Unit
			values[7] = r.Item.MinStock
			values[8] = r.Item.MaxStock
			values[9] = cost
			values[10] = value
		}

		cell, _ := excelize.CoordinatesToCellName(1, idx+2)
		if err := f.SetSheetRow(inventorySheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", idx+2, err)
		}
	}

	_ = f.SetColWidth(inventorySheet, "A", "A", 10)
	_ = f.SetColWidth(inventorySheet, "B", "B", 20)
	_ = f.SetColWidth(inventorySheet, "D", "D", 24)
	_ = f.SetColWidth(inventorySheet, "L", "L", 12)

	return f.Write(w)
}

func stockStatus(r StockRow) string {
	switch {
	case r.Item == nil:
		return ""
	case r.Stock.Quantity < r.Item.MinStock:
		return "LOW"
	case r.Stock.Quantity > r.Item.MaxStock:
		return "OVER"
	default:
		return "OK"
	}
}
