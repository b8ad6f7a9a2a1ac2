package service

import (
	"fmt"
	"log/slog"

	"archery/internal/core"
	"archery/internal/headtohead"
	"archery/internal/storage"
)

// MatchView is one stored match with its derived state
type MatchView struct {
	Record   storage.MatchRecord  `json:"record"`
	Match    *headtohead.Match    `json:"-"`
	Totals   []*headtohead.Totals `json:"runningTotals"`
	Results  []headtohead.Result  `json:"setResults"`
	Result   headtohead.Result    `json:"result"`
	Complete bool                 `json:"complete"`
	Arrows   int                  `json:"arrowsShot"`
}

type HeadToHeadView struct {
	ShootID string            `json:"shootId"`
	Config  headtohead.Config `json:"config"`
	Matches []MatchView       `json:"matches"`
}

func configFromRecord(r storage.HeadToHeadRecord) headtohead.Config {
	return headtohead.Config{
		TeamSize:         r.TeamSize,
		IsSetPoints:      r.IsSetPoints,
		IsStandardFormat: r.IsStandardFormat,
		EndSize:          r.EndSize,
	}
}

// CreateHeadToHead attaches a head-to-head format to an existing shoot
func (s *Service) CreateHeadToHead(req core.HeadToHeadRequest) error {
	if err := s.check(req); err != nil {
		return err
	}
	if _, err := s.store.GetShoot(req.ShootID); err != nil {
		return s.wrap(err, "shoot lookup")
	}

	record := storage.HeadToHeadRecord{
		ShootID:          req.ShootID,
		TeamSize:         req.TeamSize,
		IsSetPoints:      req.IsSetPoints,
		IsStandardFormat: req.IsStandardFormat,
		EndSize:          req.EndSize,
	}
	if err := s.store.CreateHeadToHead(record); err != nil {
		return s.wrap(err, "create head to head")
	}

	s.logger.Info("Head to head created",
		slog.String("shoot_id", req.ShootID),
		slog.Int("team_size", req.TeamSize),
		slog.Bool("set_points", req.IsSetPoints),
	)
	return nil
}

// AddMatch starts the next match and returns its number
func (s *Service) AddMatch(req core.MatchRequest) (int, error) {
	if err := s.check(req); err != nil {
		return 0, err
	}
	if _, err := s.store.GetHeadToHead(req.ShootID); err != nil {
		return 0, s.wrap(err, "head to head lookup")
	}

	n, err := s.store.AddMatch(storage.MatchRecord{
		ShootID:      req.ShootID,
		Opponent:     req.Opponent,
		OpponentRank: req.OpponentRank,
	})
	if err != nil {
		return 0, s.wrap(err, "add match")
	}
	return n, nil
}

// RecordSet replaces one set's rows after checking the match stays consistent
func (s *Service) RecordSet(req core.SetRequest) (*MatchView, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	h2h, err := s.store.GetHeadToHead(req.ShootID)
	if err != nil {
		return nil, s.wrap(err, "head to head lookup")
	}
	cfg := configFromRecord(h2h)

	rowDetails, err := setDetails(req)
	if err != nil {
		return nil, err
	}

	all, err := s.store.GetDetails(req.ShootID)
	if err != nil {
		return nil, s.wrap(err, "head to head rows")
	}
	record, err := s.matchRecord(req.ShootID, req.Match)
	if err != nil {
		return nil, err
	}

	// Build the match as it would be stored to catch structural problems first
	var next []headtohead.Detail
	for _, d := range all {
		if d.Match == req.Match && d.SetNumber != req.Set {
			next = append(next, d)
		}
	}
	next = append(next, rowDetails...)
	if _, err := headtohead.NewMatch(cfg, req.Match, next, record.IsShootOffWin); err != nil {
		return nil, s.wrap(err, "record set")
	}

	if err := s.store.ReplaceSetDetails(req.ShootID, req.Match, req.Set, rowDetails); err != nil {
		return nil, s.wrap(err, "record set")
	}
	return s.matchView(cfg, record, next)
}

func setDetails(req core.SetRequest) ([]headtohead.Detail, error) {
	var out []headtohead.Detail
	seen := make(map[headtohead.RowType]bool)
	for _, row := range req.Rows {
		t, err := headtohead.ParseRowType(row.Type)
		if err != nil {
			return nil, invalid("%v", err)
		}
		if seen[t] {
			return nil, invalid("row %s given twice", t)
		}
		seen[t] = true

		if row.Total != nil {
			if len(row.Arrows) > 0 {
				return nil, invalid("row %s has both a total and arrows", t)
			}
			out = append(out, headtohead.Detail{
				Match: req.Match, SetNumber: req.Set, Type: t, ArrowNumber: 1, IsTotal: true, Score: *row.Total,
			})
			continue
		}
		if len(row.Xs) > len(row.Arrows) {
			return nil, invalid("row %s has %d X flags for %d arrows", t, len(row.Xs), len(row.Arrows))
		}
		for i, score := range row.Arrows {
			out = append(out, headtohead.Detail{
				Match: req.Match, SetNumber: req.Set, Type: t, ArrowNumber: i + 1,
				Score: score, IsX: i < len(row.Xs) && row.Xs[i],
			})
		}
	}
	return out, nil
}

func (s *Service) matchRecord(shootID string, match int) (storage.MatchRecord, error) {
	matches, err := s.store.ListMatches(shootID)
	if err != nil {
		return storage.MatchRecord{}, s.wrap(err, "list matches")
	}
	for _, m := range matches {
		if m.MatchNumber == match {
			return m, nil
		}
	}
	return storage.MatchRecord{}, s.wrap(fmt.Errorf("match %d: %w", match, storage.ErrNotFound), "match lookup")
}

func (s *Service) matchView(cfg headtohead.Config, record storage.MatchRecord, details []headtohead.Detail) (*MatchView, error) {
	m, err := headtohead.NewMatch(cfg, record.MatchNumber, details, record.IsShootOffWin)
	if err != nil {
		return nil, s.wrap(err, fmt.Sprintf("match %d", record.MatchNumber))
	}

	v := &MatchView{
		Record:   record,
		Match:    m,
		Totals:   m.RunningTotals(),
		Result:   m.Result(),
		Complete: m.IsComplete(),
		Arrows:   m.ArrowsShot(),
	}
	for _, set := range m.Sets {
		res := set.Result()
		if res == headtohead.Unknown {
			s.logger.Warn("Set result cannot be determined",
				slog.String("shoot_id", record.ShootID),
				slog.Int("match", record.MatchNumber),
				slog.Int("set", set.Number),
			)
		}
		v.Results = append(v.Results, res)
	}
	return v, nil
}

// SetShootOffWin records who won a tied shoot-off
func (s *Service) SetShootOffWin(shootID string, match int, win bool) error {
	if err := s.store.SetShootOffWin(shootID, match, win); err != nil {
		return s.wrap(err, "shoot-off")
	}
	return nil
}

func (s *Service) DeleteSet(shootID string, match, set int) error {
	if err := s.store.DeleteSet(shootID, match, set); err != nil {
		return s.wrap(err, "delete set")
	}
	return nil
}

func (s *Service) DeleteMatch(shootID string, match int) error {
	if err := s.store.DeleteMatch(shootID, match); err != nil {
		return s.wrap(err, "delete match")
	}
	return nil
}

// HeadToHead derives every match of a shoot from its stored rows
func (s *Service) HeadToHead(shootID string) (*HeadToHeadView, error) {
	h2h, err := s.store.GetHeadToHead(shootID)
	if err != nil {
		return nil, s.wrap(err, "head to head lookup")
	}
	matches, err := s.store.ListMatches(shootID)
	if err != nil {
		return nil, s.wrap(err, "list matches")
	}
	details, err := s.store.GetDetails(shootID)
	if err != nil {
		return nil, s.wrap(err, "head to head rows")
	}

	byMatch := make(map[int][]headtohead.Detail)
	for _, d := range details {
		byMatch[d.Match] = append(byMatch[d.Match], d)
	}

	cfg := configFromRecord(h2h)
	view := &HeadToHeadView{ShootID: shootID, Config: cfg}
	for _, rec := range matches {
		mv, err := s.matchView(cfg, rec, byMatch[rec.MatchNumber])
		if err != nil {
			return nil, err
		}
		view.Matches = append(view.Matches, *mv)
	}
	return view, nil
}
