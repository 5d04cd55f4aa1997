// Package pdf genera los PDFs imprimibles del libro de deudas con Maroto v2.
//
// Layout de un reporte (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + título     │  Período + fecha de emisión  │
//	│  PARTE (opcional): nombre, contacto, saldo                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Ref | Descripción | Monto | Pagado | Saldo  │
//	│  ...                                                        │
//	│  GRAND TOTAL (negrita, sombreado)                           │
//	│  SUBTOTALES POR MÉTODO (solo abonos)                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/internal/domain/ledger"
	"github.com/jhoicas/Khata-api/internal/domain/report"
	"github.com/jhoicas/Khata-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorShade   = &props.Color{Red: 225, Green: 232, Blue: 240}
)

const dateLayout = "02/01/2006"

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa billing.ReportRenderer usando Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderizador.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// RenderReport genera el PDF de un reporte de facturas o de abonos.
func (g *MarotoRenderer) RenderReport(ctx context.Context, r *report.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := newDocument(r.Title, r.ShopName)

	m.AddRows(reportHeaderRow(r))
	if r.Party != nil {
		m.AddRows(partyRow(r.Party))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := columnsFor(r.Kind)
	m.AddRows(tableHeaderRow(cols))
	for i, rw := range r.Rows {
		m.AddRows(tableRow(cols, rw, r.IsTotalRow(i)))
	}

	if len(r.MethodTotals) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(methodTotalRows(r.MethodTotals)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// reportHeaderRow: tienda + título (izq), período y emisión (der).
func reportHeaderRow(r *report.Report) core.Row {
	right := []core.Component{
		text.New("Period: "+nonEmpty(r.PeriodLabel, "All time"), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		}),
		text.New("Generated: "+r.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 7, Color: colorGray,
		}),
	}
	top := 12.0
	if r.SearchLabel != "" {
		right = append(right, text.New("Search: "+r.SearchLabel, props.Text{
			Size: 8, Align: align.Right, Top: top, Color: colorGray,
		}))
		top += 5
	}
	if r.Truncated() {
		right = append(right, text.New(truncatedNote(r), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: top, Color: colorGray,
		}))
		top += 5
	}
	return row.New(max(20, top+3)).Add(
		col.New(7).Add(
			text.New(r.ShopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(right...),
	)
}

// truncatedNote aviso de export cortado por el límite de filas.
func truncatedNote(r *report.Report) string {
	return fmt.Sprintf("Showing %d of %d rows. Narrow the period for the full list.", r.ShownRows, r.MatchedRows)
}

// partyRow: datos de la parte y su saldo de por vida.
func partyRow(p *report.PartyHeader) core.Row {
	billed := "Total Sales"
	if p.Kind == entity.PartyWholesaler {
		billed = "Total Purchased"
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			text.New(fmt.Sprintf("Phone: %s   |   Address: %s",
				nonEmpty(p.Phone, "-"), nonEmpty(p.Address, "-"),
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("%s: %s   |   Total Paid: %s",
				billed, money.Display(p.TotalBilled), money.Display(p.TotalPaid),
			), props.Text{Size: 8, Align: align.Right, Top: 2}),
			text.New(statusLine(p.Summary), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8, Color: colorPrimary,
			}),
		),
	)
}

// statusLine: "Outstanding Due: Rs. 1,200" / "Advance: Rs. 300" / "Settled".
func statusLine(s ledger.Summary) string {
	switch s.Status {
	case ledger.StatusDue:
		return "Outstanding Due: " + money.Display(s.DisplayAmount)
	case ledger.StatusAdvance:
		return "Advance: " + money.Display(s.DisplayAmount)
	default:
		return "Settled"
	}
}

// column describe una columna de la tabla y cómo leer su valor de una fila.
type column struct {
	label string
	size  int
	align align.Type
	value func(rw report.Row) string
}

func columnsFor(kind report.Kind) []column {
	date := column{"Date", 2, align.Left, func(rw report.Row) string {
		if rw.Date.IsZero() {
			return ""
		}
		return rw.Date.Format(dateLayout)
	}}
	amount := column{"Amount", 2, align.Right, func(rw report.Row) string { return money.Table(rw.Amount) }}
	if kind == report.KindPayments {
		return []column{
			date,
			{"Method", 2, align.Left, func(rw report.Row) string { return strings.ToUpper(rw.Reference) }},
			{"Description", 5, align.Left, func(rw report.Row) string { return rw.Description }},
			{"Amount", 3, align.Right, amount.value},
		}
	}
	return []column{
		date,
		{"Bill No.", 2, align.Left, func(rw report.Row) string { return rw.Reference }},
		{"Description", 2, align.Left, func(rw report.Row) string { return rw.Description }},
		amount,
		{"Paid", 2, align.Right, func(rw report.Row) string { return money.Table(rw.Paid) }},
		{"Due", 2, align.Right, func(rw report.Row) string { return money.Table(rw.Due) }},
	}
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila; la de gran total va en negrita y sombreada.
func tableRow(cols []column, rw report.Row, total bool) core.Row {
	style := fontstyle.Normal
	if total || rw.Kind == report.RowOpening {
		style = fontstyle.Bold
	}
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.value(rw), props.Text{
			Style: style, Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cs...)
	if total {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorShade})
	}
	return r
}

// methodTotalRows: subtotales por método de pago.
func methodTotalRows(totals []report.MethodTotal) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("Totals by payment method", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, mt := range totals {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(strings.ToUpper(mt.Method), props.Text{Size: 8, Left: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d payments", mt.Count), props.Text{Size: 8, Align: align.Right})),
			col.New(4).Add(text.New(money.Table(mt.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
