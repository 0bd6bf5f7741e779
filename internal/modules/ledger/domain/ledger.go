package domain

import (
	"fmt"
	"strings"
	"sync"

	gradedomain "ascent/internal/modules/grade/domain"
	"ascent/internal/platform/calendar"
	apperrors "ascent/internal/platform/errors"
	"ascent/internal/platform/id"
)

type Discipline string

const (
	Boulder Discipline = "boulder"
	Rope    Discipline = "rope"
)

var Disciplines = []Discipline{Boulder, Rope}

func ParseDiscipline(raw string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "boulder", "bouldering":
		return Boulder, nil
	case "rope", "roped", "sport", "lead", "toprope":
		return Rope, nil
	default:
		return "", fmt.Errorf("%w: unknown discipline %q", apperrors.ErrInvalidInput, raw)
	}
}

// ParseOptionalDiscipline is ParseDiscipline where an empty string means no
// filter and yields nil.
func ParseOptionalDiscipline(raw string) (*Discipline, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := ParseDiscipline(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (d Discipline) Validate() error {
	switch d {
	case Boulder, Rope:
		return nil
	default:
		return fmt.Errorf("%w: unknown discipline %q", apperrors.ErrInvalidInput, string(d))
	}
}

// LogEntry is one ledger row. At most one row exists per
// (Date, Discipline, Grade) and Count is always positive.
type LogEntry struct {
	ID         string        `json:"id"`
	Date       calendar.Date `json:"date"`
	Discipline Discipline    `json:"discipline"`
	Grade      string        `json:"grade"`
	Count      int           `json:"count"`
}

func (e LogEntry) sameKey(date calendar.Date, discipline Discipline, grade string) bool {
	return e.Date == date && e.Discipline == discipline && e.Grade == grade
}

// Ledger is the authoritative set of per-day, per-discipline, per-grade
// counts. Every read-modify-write runs under mu.
type Ledger struct {
	mu      sync.Mutex
	ids     id.Generator
	rows    []LogEntry
	version uint64
}

func NewLedger(ids id.Generator) *Ledger {
	return &Ledger{ids: ids, rows: []LogEntry{}}
}

// UpsertCount adds delta to the row keyed by date, discipline and grade.
// The count is clamped at zero and a row that reaches zero is deleted. A
// non-positive delta on an absent row changes nothing. The returned entry
// has Count 0 when no row remains for the key.
func (l *Ledger) UpsertCount(date calendar.Date, discipline Discipline, grade string, delta int) (LogEntry, error) {
	grade, err := validateKey(date, discipline, grade)
	if err != nil {
		return LogEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.upsertLocked(date, discipline, grade, delta), nil
}

func (l *Ledger) upsertLocked(date calendar.Date, discipline Discipline, grade string, delta int) LogEntry {
	for i := range l.rows {
		if !l.rows[i].sameKey(date, discipline, grade) {
			continue
		}
		next := l.rows[i].Count + delta
		if next <= 0 {
			removed := l.rows[i]
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			l.version++
			removed.Count = 0
			return removed
		}
		if delta != 0 {
			l.rows[i].Count = next
			l.version++
		}
		return l.rows[i]
	}

	if delta <= 0 {
		return LogEntry{Date: date, Discipline: discipline, Grade: grade}
	}
	entry := LogEntry{ID: l.ids.New(), Date: date, Discipline: discipline, Grade: grade, Count: delta}
	l.rows = append(l.rows, entry)
	l.version++
	return entry
}

// Remove deletes a row by id. Unknown ids are ignored.
func (l *Ledger) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.rows {
		if l.rows[i].ID == id {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

// ResetDay deletes every row on date, limited to one discipline when given.
func (l *Ledger) ResetDay(date calendar.Date, discipline *Discipline) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.rows[:0]
	removed := 0
	for _, row := range l.rows {
		if row.Date == date && (discipline == nil || row.Discipline == *discipline) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	l.rows = kept
	if removed > 0 {
		l.version++
	}
	return removed
}

func (l *Ledger) CountByDateDiscipline(date calendar.Date, discipline Discipline) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, row := range l.rows {
		if row.Date == date && row.Discipline == discipline {
			total += row.Count
		}
	}
	return total
}

// Rows returns a copy of every row in insertion order.
func (l *Ledger) Rows() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.rows))
	copy(out, l.rows)
	return out
}

// Version changes on every mutation that alters the rows.
func (l *Ledger) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Restore replaces the rows with a persisted set. Rows that would break the
// key or positive-count invariants are merged or dropped; the number of
// rows dropped or merged is returned.
func (l *Ledger) Restore(rows []LogEntry) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = make([]LogEntry, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		grade, err := validateKey(row.Date, row.Discipline, row.Grade)
		if err != nil || row.Count <= 0 {
			skipped++
			continue
		}
		merged := false
		for i := range l.rows {
			if l.rows[i].sameKey(row.Date, row.Discipline, grade) {
				l.rows[i].Count += row.Count
				merged = true
				break
			}
		}
		if merged {
			skipped++
			continue
		}
		if row.ID == "" {
			row.ID = l.ids.New()
		}
		row.Grade = grade
		l.rows = append(l.rows, row)
	}
	l.version++
	return skipped
}

func validateKey(date calendar.Date, discipline Discipline, grade string) (string, error) {
	if !date.Valid() {
		return "", fmt.Errorf("%w: invalid date %q", apperrors.ErrInvalidInput, string(date))
	}
	if err := discipline.Validate(); err != nil {
		return "", err
	}
	grade = gradedomain.Canonical(grade)
	if grade == "" {
		return "", fmt.Errorf("%w: grade is required", apperrors.ErrInvalidInput)
	}
	return grade, nil
}
