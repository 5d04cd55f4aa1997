package filter

import "strings"

// DefaultLimit tamaño de página por defecto.
const DefaultLimit = 10

// MaxLimit tope para listados paginados en el servidor.
const MaxLimit = 100

// State estado de filtro de un listado. Los métodos devuelven copias; cualquier cambio
// de búsqueda o de rango vuelve a la página 1 para no quedar fuera de rango.
type State struct {
	Search string
	Time   TimeFilter
	Page   int
	Limit  int
}

// NewState estado inicial: sin búsqueda, todo el tiempo, página 1.
func NewState(limit int) State {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return State{Time: All, Page: 1, Limit: limit}
}

// WithSearch cambia el texto de búsqueda.
func (s State) WithSearch(q string) State {
	q = strings.TrimSpace(q)
	if q != s.Search {
		s.Search = q
		s.Page = 1
	}
	return s
}

// WithTimeFilter confirma un preset o un rango ya validado.
func (s State) WithTimeFilter(f TimeFilter) State {
	if f == nil {
		f = All
	}
	if s.Time == nil || f != s.Time {
		s.Time = f
		s.Page = 1
	}
	return s
}

// ApplyCustom confirma un rango personalizado solo si ambas fechas son válidas.
// Si no, devuelve el estado previo sin cambios junto al error.
func (s State) ApplyCustom(startDate, endDate string) (State, error) {
	c, err := NewCustomRange(startDate, endDate)
	if err != nil {
		return s, err
	}
	return s.WithTimeFilter(c), nil
}

// WithPage mueve a otra página (mínimo 1).
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// IsSearch indica si hay texto libre aplicado.
func (s State) IsSearch() bool { return s.Search != "" }

// Offset desplazamiento para consultas paginadas.
func (s State) Offset() int {
	if s.Page < 1 {
		return 0
	}
	return (s.Page - 1) * s.Limit
}

// Normalize aplica valores por defecto y el tope de página.
func (s State) Normalize() State {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	if s.Limit > MaxLimit {
		s.Limit = MaxLimit
	}
	if s.Time == nil {
		s.Time = All
	}
	return s
}
