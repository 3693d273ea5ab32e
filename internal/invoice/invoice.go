package invoice

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// Line is one billed row derived from an order item snapshot.
type Line struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

// Invoice is the billing view of an order. Because it is built from the
// immutable item snapshots, later product price changes never alter it.
type Invoice struct {
	OrderID      string    `json:"order_id"`
	BuyerID      string    `json:"buyer_id"`
	IssuedAt     time.Time `json:"issued_at"`
	Lines        []Line    `json:"lines"`
	Subtotal     float64   `json:"subtotal"`
	Discount     float64   `json:"discount"`
	DiscountCode string    `json:"discount_code,omitempty"`
	DeliveryFee  float64   `json:"delivery_fee"`
	Total        float64   `json:"total"`
}

// Renderer turns an invoice into a downloadable document. PDF rendering lives
// behind this interface, outside the core.
type Renderer interface {
	Render(inv Invoice) (data []byte, contentType string, err error)
}

// Build derives an invoice from an order's stored snapshot and pricing.
func Build(o *domain.Order) Invoice {
	lines := make([]Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.UnitPrice * float64(item.Quantity),
		})
	}

	return Invoice{
		OrderID:      o.ID,
		BuyerID:      o.BuyerID,
		IssuedAt:     o.CreatedAt,
		Lines:        lines,
		Subtotal:     o.Subtotal,
		Discount:     o.DiscountAmount,
		DiscountCode: o.DiscountCode,
		DeliveryFee:  o.DeliveryFee,
		Total:        o.Total,
	}
}

// TextRenderer renders a plain-text invoice. Used as the default when no PDF
// renderer is wired in.
type TextRenderer struct{}

func (TextRenderer) Render(inv Invoice) ([]byte, string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "INVOICE %s\n", inv.OrderID)
	fmt.Fprintf(&buf, "Issued: %s\n\n", inv.IssuedAt.Format("2006-01-02 15:04"))

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tQTY\tPRICE\tAMOUNT")
	for _, line := range inv.Lines {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n", line.Name, line.Quantity, line.UnitPrice, line.Amount)
	}
	if err := w.Flush(); err != nil {
		return nil, "", fmt.Errorf("render invoice table: %w", err)
	}

	fmt.Fprintf(&buf, "\nSubtotal:\t%.2f\n", inv.Subtotal)
	if inv.Discount > 0 {
		fmt.Fprintf(&buf, "Discount (%s):\t-%.2f\n", inv.DiscountCode, inv.Discount)
	}
	fmt.Fprintf(&buf, "Delivery:\t%.2f\n", inv.DeliveryFee)
	fmt.Fprintf(&buf, "Total:\t%.2f\n", inv.Total)

	return buf.Bytes(), "text/plain; charset=utf-8", nil
}
