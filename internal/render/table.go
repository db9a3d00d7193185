package render

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"mostro/internal/domain"
)

// Orders writes the order list as an aligned table. An amount of 0 is the
// protocol's "price it at the market rate" marker and renders as text.
func Orders(w io.Writer, orders []domain.Order) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Side", "Order Id", "Status", "Amount", "Fiat Code",
		"Fiat Amount", "Payment Method", "Premium", "Created",
	})
	for _, o := range orders {
		amount := "Market price"
		if o.Amount != 0 {
			amount = strconv.FormatInt(o.Amount, 10)
		}
		created := time.Unix(o.CreatedAt, 0).Local().Format("2006-01-02 15:04:05")
		table.Append([]string{
			o.Kind,
			o.ID,
			o.Status,
			amount,
			o.FiatCode,
			strconv.FormatInt(o.FiatAmount, 10),
			o.PaymentMethod,
			strconv.FormatInt(o.Premium, 10),
			created,
		})
	}
	table.Render()
}
