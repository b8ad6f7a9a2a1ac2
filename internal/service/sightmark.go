package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"archery/internal/core"
	"archery/internal/sightmark"
)

// AddSightMark records a sight setting and returns its id
func (s *Service) AddSightMark(req core.SightMarkRequest) (string, error) {
	if err := s.check(req); err != nil {
		return "", err
	}

	m := sightmark.SightMark{
		ID:       uuid.NewString(),
		Distance: req.Distance,
		IsMetric: req.IsMetric,
		Value:    req.Value,
		Note:     req.Note,
		DateSet:  time.Now().UTC(),
		IsMarked: req.IsMarked,
	}
	if err := s.store.AddSightMark(m); err != nil {
		return "", s.wrap(err, "add sight mark")
	}

	s.logger.Info("Sight mark added", slog.String("id", m.ID), slog.String("distance", m.Label()))
	return m.ID, nil
}

func (s *Service) SightMarks(includeArchived bool) ([]sightmark.SightMark, error) {
	marks, err := s.store.ListSightMarks(includeArchived)
	if err != nil {
		return nil, s.wrap(err, "list sight marks")
	}
	return marks, nil
}

func (s *Service) ArchiveSightMark(id string) error {
	if err := s.store.ArchiveSightMark(id); err != nil {
		return s.wrap(err, "archive sight mark")
	}
	return nil
}

// EstimateSightMark predicts the sight setting for an unmarked distance
func (s *Service) EstimateSightMark(distance int, isMetric bool) (float64, error) {
	if distance <= 0 {
		return 0, invalid("distance must be positive")
	}
	marks, err := s.store.ListSightMarks(false)
	if err != nil {
		return 0, s.wrap(err, "list sight marks")
	}
	v, err := sightmark.Estimate(marks, distance, isMetric)
	if err != nil {
		return 0, s.wrap(err, "estimate sight mark")
	}
	return v, nil
}
