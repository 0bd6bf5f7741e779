package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"ascent/internal/platform/calendar"
	apperrors "ascent/internal/platform/errors"
	"ascent/internal/platform/id"
)

const SchemaVersion = 1

// Policy decides what starting a session does while another is running.
type Policy string

const (
	// PolicyReject refuses the new session.
	PolicyReject Policy = "reject"
	// PolicyFinish closes the running session at the new start time first.
	PolicyFinish Policy = "finish"
	// PolicyDiscard drops the running session and its elapsed time.
	PolicyDiscard Policy = "discard"
)

func ParsePolicy(raw string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PolicyReject, nil
	case PolicyReject, PolicyFinish, PolicyDiscard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown session policy %q", apperrors.ErrInvalidInput, raw)
	}
}

// ActiveSession is the gym visit in progress. Its start is stored as epoch
// milliseconds.
type ActiveSession struct {
	StartedAt time.Time
	GymName   string
}

type activeWire struct {
	StartTimeEpochMs int64  `json:"start_time_epoch_ms"`
	GymName          string `json:"gym_name"`
}

func (a ActiveSession) MarshalJSON() ([]byte, error) {
	return json.Marshal(activeWire{StartTimeEpochMs: a.StartedAt.UnixMilli(), GymName: a.GymName})
}

func (a *ActiveSession) UnmarshalJSON(raw []byte) error {
	wire := activeWire{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	a.StartedAt = time.UnixMilli(wire.StartTimeEpochMs)
	a.GymName = wire.GymName
	return nil
}

// Elapsed never goes negative, even when the clock moved backwards.
func (a ActiveSession) Elapsed(now time.Time) time.Duration {
	if d := now.Sub(a.StartedAt); d > 0 {
		return d
	}
	return 0
}

// Entry is a finished gym visit. It is never modified after creation.
type Entry struct {
	ID            string        `json:"id"`
	Date          calendar.Date `json:"date"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	DurationLabel string        `json:"duration_label"`
	GymName       string        `json:"gym_name"`
}

func (e Entry) Duration() time.Duration {
	if d := e.EndTime.Sub(e.StartTime); d > 0 {
		return d
	}
	return 0
}

// DurationLabel formats whole minutes as "45m" or "1h 05m".
func DurationLabel(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// Finish closes active at end. The entry is dated by the day it started.
func Finish(active ActiveSession, end time.Time, entryID string) Entry {
	if end.Before(active.StartedAt) {
		end = active.StartedAt
	}
	return Entry{
		ID:            entryID,
		Date:          calendar.Of(active.StartedAt),
		StartTime:     active.StartedAt,
		EndTime:       end,
		DurationLabel: DurationLabel(end.Sub(active.StartedAt)),
		GymName:       active.GymName,
	}
}

// StartResult reports what happened to a session that was already running.
type StartResult struct {
	Active    ActiveSession
	Finished  *Entry
	Discarded *ActiveSession
}

// Registry holds the session history and at most one active session.
type Registry struct {
	mu      sync.Mutex
	ids     id.Generator
	history []Entry
	active  *ActiveSession
}

func NewRegistry(ids id.Generator) *Registry {
	return &Registry{ids: ids}
}

func (r *Registry) Start(gymName string, at time.Time, policy Policy) (StartResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := StartResult{Active: ActiveSession{StartedAt: at, GymName: strings.TrimSpace(gymName)}}
	if r.active != nil {
		switch policy {
		case PolicyFinish:
			entry := Finish(*r.active, at, r.ids.New())
			r.history = append(r.history, entry)
			result.Finished = &entry
		case PolicyDiscard:
			previous := *r.active
			result.Discarded = &previous
		default:
			return StartResult{}, apperrors.ErrActiveSessionExists
		}
	}
	active := result.Active
	r.active = &active
	return result, nil
}

func (r *Registry) End(at time.Time) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return Entry{}, apperrors.ErrNoActiveSession
	}
	entry := Finish(*r.active, at, r.ids.New())
	r.history = append(r.history, entry)
	r.active = nil
	return entry, nil
}

func (r *Registry) Active() (ActiveSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return ActiveSession{}, false
	}
	return *r.active, true
}

// History returns finished sessions in the order they ended.
func (r *Registry) History() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.history))
	copy(out, r.history)
	return out
}

// Restore replaces the registry contents. Entries without an id get one.
func (r *Registry) Restore(history []Entry, active *ActiveSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = make([]Entry, 0, len(history))
	for _, e := range history {
		if e.ID == "" {
			e.ID = r.ids.New()
		}
		r.history = append(r.history, e)
	}
	r.active = nil
	if active != nil && active.StartedAt.UnixMilli() > 0 {
		a := *active
		r.active = &a
	}
}
