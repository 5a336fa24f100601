package seed

import (
	"bufio"
	"fmt"
	"io"

	"restoran-inventory/internal/models"
)

func writeLines(w io.Writer, n int, line func(i int) string) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintln(bw, line(i)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func FormatBranches(w io.Writer, branches []models.Branch) error {
	return writeLines(w, len(branches), func(i int) string {
		b := branches[i]
		return fmt.Sprintf("%s|%s|%s|%s|%s", b.ID, b.BranchName, b.Address, b.Postcode, b.Phone)
	})
}

func FormatItems(w io.Writer, items []models.Item) error {
	return writeLines(w, len(items), func(i int) string {
		it := items[i]
		return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d|%d", it.ID, it.ItemName, it.Category, it.Unit,
			it.Supplier, it.CostPerUnit.StringFixed(2), it.MinStock, it.MaxStock)
	})
}

func FormatStocks(w io.Writer, stocks []models.Stock) error {
	return writeLines(w, len(stocks), func(i int) string {
		s := stocks[i]
		return fmt.Sprintf("%s|%s|%s|%d", s.StockID, s.ItemID, s.BranchID, s.Quantity)
	})
}

func FormatTransfers(w io.Writer, transfers []models.Transfer) error {
	return writeLines(w, len(transfers), func(i int) string {
		t := transfers[i]
		return fmt.Sprintf("%s|%s|%d|%s|%s|%s|%s", t.TransferID, t.ItemID, t.Quantity, t.Unit,
			t.FromBranch, t.ToBranch, t.TransferDate.Format(dateLayout))
	})
}
