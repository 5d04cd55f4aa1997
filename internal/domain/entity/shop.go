package entity

import "time"

// Shop representa el negocio (tenant) dueño de los libros de cuentas.
type Shop struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	GSTIN     string // Opcional; se imprime en el encabezado del PDF
	Timezone  string // Zona IANA usada para resolver filtros de fecha ("Asia/Kolkata")
	BillSeq   int64  // Último consecutivo de factura de venta
	PurSeq    int64  // Último consecutivo de factura de compra
	CreatedAt time.Time
	UpdatedAt time.Time
}
