package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const shopID = "2b7e1a36-5b0f-4a43-9a53-6f1f3a1b9c01"

func TestReadRows_Latin1ConCabecera(t *testing.T) {
	// "Lakshmi Stores, Bazar Ñ" codificado en Windows-1252.
	raw := "kind,name,phone,address,opening_balance,opening_payments\n" +
		"customer,Ramesh,98765,Main Road,\"1,000\",200\n" +
		"wholesaler,Lakshmi Stores,,Bazar \xd1,500.456,\n"

	rows, err := readRows(transform.NewReader(strings.NewReader(raw), charmap.Windows1252.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "customer", rows[0].kind)
	assert.Equal(t, "1000", rows[0].openingBalance.String())
	assert.Equal(t, "200", rows[0].openingPayments.String())

	assert.Equal(t, "Bazar Ñ", rows[1].address)
	assert.Equal(t, "500.46", rows[1].openingBalance.String())
	assert.True(t, rows[1].openingPayments.IsZero())
}

func TestReadRows_Errores(t *testing.T) {
	cases := map[string]string{
		"kind desconocido": "supplier,X,,,0,0\n",
		"nombre vacío":     "customer, ,,,0,0\n",
		"monto negativo":   "customer,X,,,-5,0\n",
		"monto inválido":   "customer,X,,,abc,0\n",
		"columnas":         "customer,X,0\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readRows(strings.NewReader(raw))
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL(t *testing.T) {
	rows, err := readRows(strings.NewReader("customer,D'Souza,1,Goa,300,100\nwholesaler,Gupta,,,0,0\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	writeSQL(&buf, shopID, rows, func() string { return "id-1" })
	sql := buf.String()

	assert.Contains(t, sql, "BEGIN;")
	assert.Contains(t, sql, "COMMIT;")
	assert.Contains(t, sql, "'D''Souza'")
	assert.Contains(t, sql, "'customer', 'due'")
	assert.Contains(t, sql, "'wholesaler', ''")
	assert.Contains(t, sql, "300.00, 100.00, 300.00, 100.00")
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO parties"))
}
