// seed_parties genera un script SQL con los clientes y mayoristas de un cuaderno anterior
// (exportado a CSV en Latin-1 / Windows-1252) y sus saldos de apertura.
//
// Uso: go run ./cmd/seed_parties <shop_id> [ruta/partes.csv] [salida.sql]
// Columnas: kind,name,phone,address,opening_balance,opening_payments
// kind acepta customer | wholesaler. La primera fila puede ser cabecera.
package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// partyRow fila validada del CSV.
type partyRow struct {
	kind            string
	name            string
	phone           string
	address         string
	openingBalance  decimal.Decimal
	openingPayments decimal.Decimal
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_parties <shop_id> [partes.csv] [salida.sql]")
		os.Exit(2)
	}
	shopID := os.Args[1]
	if _, err := uuid.Parse(shopID); err != nil {
		fmt.Fprintf(os.Stderr, "shop_id inválido: %v\n", err)
		os.Exit(2)
	}
	csvPath := "partes.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	outPath := "seed_parties.sql"
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}

	in, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	rows, err := readRows(transform.NewReader(in, charmap.Windows1252.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	writeSQL(w, shopID, rows, func() string { return uuid.New().String() })
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d partes\n", outPath, len(rows))
}

// readRows valida todas las filas; un error indica la línea del CSV.
func readRows(r io.Reader) ([]partyRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	var rows []partyRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "kind") {
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (partyRow, error) {
	kind := strings.ToLower(strings.TrimSpace(rec[0]))
	if kind != "customer" && kind != "wholesaler" {
		return partyRow{}, fmt.Errorf("kind %q no válido", rec[0])
	}
	name := strings.TrimSpace(rec[1])
	if name == "" {
		return partyRow{}, errors.New("nombre vacío")
	}
	opening, err := amount(rec[4])
	if err != nil {
		return partyRow{}, fmt.Errorf("opening_balance: %w", err)
	}
	paid, err := amount(rec[5])
	if err != nil {
		return partyRow{}, fmt.Errorf("opening_payments: %w", err)
	}
	return partyRow{
		kind:            kind,
		name:            name,
		phone:           strings.TrimSpace(rec[2]),
		address:         strings.TrimSpace(rec[3]),
		openingBalance:  opening,
		openingPayments: paid,
	}, nil
}

// amount vacío cuenta como cero; acepta separadores de miles ("1,20,000.50").
func amount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("no puede ser negativo")
	}
	return d.Round(2), nil
}

// writeSQL una sentencia por parte; los acumulados arrancan con los saldos de apertura.
func writeSQL(w io.Writer, shopID string, rows []partyRow, newID func() string) {
	fmt.Fprintln(w, "-- Partes importadas con saldo de apertura")
	fmt.Fprintf(w, "-- Tienda %s, %d filas\n\n", shopID, len(rows))
	fmt.Fprintln(w, "BEGIN;")
	for _, r := range rows {
		customerType := ""
		if r.kind == "customer" {
			customerType = "due"
		}
		fmt.Fprintln(w, "INSERT INTO parties (id, shop_id, kind, customer_type, name, phone, address,")
		fmt.Fprintln(w, "    opening_balance, opening_payments, total_billed, total_paid)")
		fmt.Fprintf(w, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', %s, %s, %s, %s);\n",
			newID(), shopID, r.kind, customerType,
			escapeSQL(r.name), escapeSQL(r.phone), escapeSQL(r.address),
			r.openingBalance.StringFixed(2), r.openingPayments.StringFixed(2),
			r.openingBalance.StringFixed(2), r.openingPayments.StringFixed(2))
	}
	fmt.Fprintln(w, "COMMIT;")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
