package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
	"github.com/jhoicas/Khata-api/pkg/money"
)

// RenderBillInvoice genera el comprobante de una factura individual.
func (g *MarotoRenderer) RenderBillInvoice(ctx context.Context, shop *entity.Shop, party *entity.Party, bill *entity.Bill) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := newDocument(invoiceTitle(bill), shop.Name)

	m.AddRows(invoiceHeaderRow(shop, bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(invoicePartyRow(bill, party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceAmountsRow(bill))
	if bill.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Notes: "+bill.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

func invoiceTitle(b *entity.Bill) string {
	if b.BillType == entity.BillPurchase {
		return "PURCHASE BILL"
	}
	return "SALE INVOICE"
}

// invoiceHeaderRow: tienda + GSTIN (izq), número y fecha (der).
func invoiceHeaderRow(shop *entity.Shop, b *entity.Bill) core.Row {
	left := []core.Component{
		text.New(shop.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("%s   |   Tel: %s", nonEmpty(shop.Address, "-"), nonEmpty(shop.Phone, "-")),
			props.Text{Size: 8, Top: 9, Color: colorGray}),
	}
	if shop.GSTIN != "" {
		left = append(left, text.New("GSTIN: "+shop.GSTIN, props.Text{Size: 8, Top: 14, Color: colorGray}))
	}
	return row.New(20).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New(invoiceTitle(b), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(b.BillNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+b.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// invoicePartyRow: cliente o mayorista de la factura.
func invoicePartyRow(b *entity.Bill, p *entity.Party) core.Row {
	label := "BILL TO"
	if b.BillType == entity.BillPurchase {
		label = "SUPPLIER"
	}
	name, contact := b.PartyName, "-"
	if p != nil {
		name = p.Name
		contact = fmt.Sprintf("Phone: %s   |   Address: %s", nonEmpty(p.Phone, "-"), nonEmpty(p.Address, "-"))
	}
	return row.New(16).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(name, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
	))
}

// invoiceAmountsRow: total, pagado, saldo y estado.
func invoiceAmountsRow(b *entity.Bill) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	due := ledger.BillDue(b)
	return row.New(30).Add(
		col.New(3).Add(text.New("Payment: "+nonEmpty(b.PaymentMethod, "-"), props.Text{Size: 8, Top: 1, Color: colorGray})),
		col.New(3),
		col.New(3).Add(
			label("Total:"),
			text.New("Paid:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("Due:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 12, Color: colorPrimary}),
			text.New("Status:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 19}),
		),
		col.New(3).Add(
			value(money.Table(b.TotalAmount)),
			text.New(money.Table(b.PaidAmount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 6}),
			text.New(money.Table(due), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 12, Color: colorPrimary}),
			text.New(billStatus(b), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 19}),
		),
	)
}

// billStatus: PAID, PARTIAL o UNPAID según lo abonado.
func billStatus(b *entity.Bill) string {
	switch {
	case !ledger.BillDue(b).IsPositive():
		return "PAID"
	case b.PaidAmount.IsPositive():
		return "PARTIAL"
	default:
		return "UNPAID"
	}
}
