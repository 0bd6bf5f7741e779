package service

import (
	"context"
	"log/slog"
	"time"

	"ascent/internal/modules/session/domain"
	sessionout "ascent/internal/modules/session/port/out"
	"ascent/internal/platform/clock"
)

type SessionService struct {
	registry  *domain.Registry
	clock     clock.Clock
	policy    domain.Policy
	persister sessionout.Persister
	journal   sessionout.Journal
	logger    *slog.Logger
}

func NewSessionService(registry *domain.Registry, clock clock.Clock, policy domain.Policy, persister sessionout.Persister, journal sessionout.Journal, logger *slog.Logger) *SessionService {
	if policy == "" {
		policy = domain.PolicyReject
	}
	return &SessionService{
		registry:  registry,
		clock:     clock,
		policy:    policy,
		persister: persister,
		journal:   journal,
		logger:    logger,
	}
}

// Start opens a session under the configured policy. A session closed by the
// finish policy is journaled like any other.
func (s *SessionService) Start(ctx context.Context, gymName string) (domain.StartResult, []string, error) {
	now := s.clock.Now()
	result, err := s.registry.Start(gymName, now, s.policy)
	if err != nil {
		return domain.StartResult{}, nil, err
	}
	warnings := []string{}
	if result.Discarded != nil {
		s.logger.Warn("running session discarded",
			"gym", result.Discarded.GymName,
			"elapsed", domain.DurationLabel(result.Discarded.Elapsed(now)))
	}
	if result.Finished != nil {
		if _, warning := s.record(ctx, *result.Finished); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	s.logger.Debug("session started", "gym", result.Active.GymName, "policy", string(s.policy))
	if warning := s.persist(ctx); warning != "" {
		warnings = append(warnings, warning)
	}
	return result, warnings, nil
}

// End closes the running session. The returned path is empty when the
// journal is missing or failed.
func (s *SessionService) End(ctx context.Context) (domain.Entry, string, []string, error) {
	entry, err := s.registry.End(s.clock.Now())
	if err != nil {
		return domain.Entry{}, "", nil, err
	}
	warnings := []string{}
	path, warning := s.record(ctx, entry)
	if warning != "" {
		warnings = append(warnings, warning)
	}
	s.logger.Debug("session ended", "id", entry.ID, "gym", entry.GymName, "duration", entry.DurationLabel)
	if warning := s.persist(ctx); warning != "" {
		warnings = append(warnings, warning)
	}
	return entry, path, warnings, nil
}

func (s *SessionService) Active() (domain.ActiveSession, time.Duration, bool) {
	active, ok := s.registry.Active()
	if !ok {
		return domain.ActiveSession{}, 0, false
	}
	return active, active.Elapsed(s.clock.Now()), true
}

func (s *SessionService) History() []domain.Entry {
	return s.registry.History()
}

func (s *SessionService) record(ctx context.Context, entry domain.Entry) (string, string) {
	if s.journal == nil {
		return "", ""
	}
	path, err := s.journal.Record(ctx, entry)
	if err != nil {
		s.logger.Warn("could not write session note", "id", entry.ID, "error", err)
		return "", "session note not written: " + err.Error()
	}
	return path, ""
}

func (s *SessionService) persist(ctx context.Context) string {
	if s.persister == nil {
		return ""
	}
	if err := s.persister.Persist(ctx); err != nil {
		s.logger.Warn("could not save logbook, change kept in memory", "error", err)
		return "change kept in memory only: " + err.Error()
	}
	return ""
}
