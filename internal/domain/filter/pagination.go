package filter

import "fmt"

// Pagination metadatos de página tal como los devuelve el servidor.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula los metadatos a partir del total informado por el repositorio.
func NewPagination(page, limit, total int) Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page <= 0 {
		page = 1
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages(total, limit)}
}

// HasPrev hay página anterior.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext hay página siguiente.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Window rango de elementos "from to X of Y" de la página actual.
func (p Pagination) Window() Window {
	from := (p.Page-1)*p.Limit + 1
	if p.Total == 0 || from > p.Total {
		return Window{Total: p.Total}
	}
	to := p.Page * p.Limit
	if to > p.Total {
		to = p.Total
	}
	return Window{From: from, To: to, Total: p.Total}
}

// Window etiquetas de la página visible.
type Window struct {
	From  int
	To    int
	Total int
}

func (w Window) String() string {
	return fmt.Sprintf("%d to %d of %d", w.From, w.To, w.Total)
}

// Page resultado de paginar en memoria.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// Paginate corta items en la página pedida: items[(page-1)*limit : page*limit].
// Una página fuera de rango devuelve un slice vacío; nunca da la vuelta.
func Paginate[T any](items []T, page, limit int) Page[T] {
	p := NewPagination(page, limit, len(items))
	start := (p.Page - 1) * p.Limit
	if start >= len(items) {
		return Page[T]{Items: []T{}, Pagination: p}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Pagination: p}
}

func totalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
