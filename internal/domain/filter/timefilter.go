// Package filter modela el estado de búsqueda/filtro de los listados (texto libre,
// rango de tiempo, página) y la paginación en memoria o delegada a la base de datos.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de las fechas en query params (ISO, sin hora).
const DateLayout = "2006-01-02"

// Presets de rango de tiempo.
const (
	All       Preset = "all"
	Today     Preset = "today"
	Yesterday Preset = "yesterday"
	ThisWeek  Preset = "this_week"
	ThisMonth Preset = "this_month"
	ThisYear  Preset = "this_year"

	customName = "custom"
)

var (
	// ErrIncompleteRange un rango personalizado requiere ambas fechas.
	ErrIncompleteRange = errors.New("filter: el rango personalizado requiere fecha inicial y final")
	// ErrInvertedRange la fecha inicial es posterior a la final.
	ErrInvertedRange = errors.New("filter: la fecha inicial es posterior a la final")
	// ErrUnknownFilter nombre de filtro desconocido.
	ErrUnknownFilter = errors.New("filter: filtro de tiempo desconocido")
)

// DateRange intervalo semiabierto [Start, End) en hora local.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartDate fecha inicial (inclusive) en formato ISO.
func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }

// EndDate fecha final (inclusive) en formato ISO.
func (r DateRange) EndDate() string { return r.End.AddDate(0, 0, -1).Format(DateLayout) }

// Contains indica si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// TimeFilter unión etiquetada: Preset o CustomRange.
type TimeFilter interface {
	Name() string
	// Resolve convierte el filtro en un rango concreto relativo a now (su zona horaria).
	// ok=false significa "sin restricción de fechas".
	Resolve(now time.Time) (r DateRange, ok bool)
	isTimeFilter()
}

// Preset rango calculado a partir del calendario local.
type Preset string

func (Preset) isTimeFilter() {}

// Name nombre del preset.
func (p Preset) Name() string { return string(p) }

// Resolve calcula el rango. Las semanas comienzan el lunes.
func (p Preset) Resolve(now time.Time) (DateRange, bool) {
	today := startOfDay(now)
	switch p {
	case Today:
		return DateRange{Start: today, End: today.AddDate(0, 0, 1)}, true
	case Yesterday:
		return DateRange{Start: today.AddDate(0, 0, -1), End: today}, true
	case ThisWeek:
		offset := (int(today.Weekday()) + 6) % 7 // lunes = 0
		start := today.AddDate(0, 0, -offset)
		return DateRange{Start: start, End: start.AddDate(0, 0, 7)}, true
	case ThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateRange{Start: start, End: start.AddDate(0, 1, 0)}, true
	case ThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return DateRange{Start: start, End: start.AddDate(1, 0, 0)}, true
	default:
		return DateRange{}, false
	}
}

// CustomRange rango elegido por el usuario; siempre trae ambas fechas.
type CustomRange struct {
	From time.Time // día inicial (inclusive)
	To   time.Time // día final (inclusive)
}

func (CustomRange) isTimeFilter() {}

// Name siempre "custom".
func (CustomRange) Name() string { return customName }

// Resolve devuelve [From 00:00, To+1 00:00) en la zona horaria de now.
func (c CustomRange) Resolve(now time.Time) (DateRange, bool) {
	loc := now.Location()
	from := time.Date(c.From.Year(), c.From.Month(), c.From.Day(), 0, 0, 0, 0, loc)
	to := time.Date(c.To.Year(), c.To.Month(), c.To.Day(), 0, 0, 0, 0, loc)
	return DateRange{Start: from, End: to.AddDate(0, 0, 1)}, true
}

// NewCustomRange valida y construye un rango personalizado a partir de fechas ISO.
// Ambas fechas son obligatorias.
func NewCustomRange(startDate, endDate string) (CustomRange, error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return CustomRange{}, ErrIncompleteRange
	}
	from, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return CustomRange{}, fmt.Errorf("filter: startDate: %w", err)
	}
	to, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return CustomRange{}, fmt.Errorf("filter: endDate: %w", err)
	}
	if from.After(to) {
		return CustomRange{}, ErrInvertedRange
	}
	return CustomRange{From: from, To: to}, nil
}

// ParseTimeFilter interpreta los query params timeFilter/startDate/endDate.
//
//   - timeFilter vacío y sin fechas      → All
//   - timeFilter vacío con alguna fecha  → custom (ambas requeridas)
//   - timeFilter=custom                  → custom (ambas requeridas)
//   - cualquier preset                   → las fechas recibidas se ignoran
func ParseTimeFilter(name, startDate, endDate string) (TimeFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		if strings.TrimSpace(startDate) == "" && strings.TrimSpace(endDate) == "" {
			return All, nil
		}
		return parseCustom(startDate, endDate)
	case customName:
		return parseCustom(startDate, endDate)
	}
	p := Preset(name)
	switch p {
	case All, Today, Yesterday, ThisWeek, ThisMonth, ThisYear:
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

func parseCustom(startDate, endDate string) (TimeFilter, error) {
	c, err := NewCustomRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
