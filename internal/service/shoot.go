package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"archery/internal/core"
	"archery/internal/handicap"
	"archery/internal/round"
	"archery/internal/scorepad"
	"archery/internal/scoring"
	"archery/internal/storage"
)

// ShootSummary is a stored shoot with everything derived from its arrows
type ShootSummary struct {
	Shoot    storage.ShootRecord `json:"shoot"`
	Round    round.Round         `json:"round"`
	SubType  round.SubType       `json:"subType"`
	Pad      *scorepad.Data      `json:"pad"`
	Score    int                 `json:"score"`
	MaxScore int                 `json:"maxScore"`
	Arrows   int                 `json:"arrows"`
	Total    int                 `json:"totalArrows"`
	Handicap *float64            `json:"handicap,omitempty"`
	Rounded  *int                `json:"roundedHandicap,omitempty"`
}

func (ss ShootSummary) IsComplete() bool {
	return ss.Arrows == ss.Total
}

// CreateShoot starts a new scored round and returns its id
func (s *Service) CreateShoot(req core.CreateShootRequest) (string, error) {
	if err := s.check(req); err != nil {
		return "", err
	}
	face, err := core.ParseFace(req.Face)
	if err != nil {
		return "", invalid("%v", err)
	}
	r, err := s.resolveRound(req.RoundSelector)
	if err != nil {
		return "", err
	}

	// the inner ten only changes scoring on an indoor face that has one
	innerTen := req.InnerTenArcher && !r.def.Round.IsOutdoor &&
		scoring.GetScoringType(r.def.Round, face).SupportsInnerTen()
	if req.InnerTenArcher && !innerTen {
		s.logger.Debug("Inner ten does not apply",
			slog.String("round", r.def.Round.Name),
			slog.String("face", face.String()),
		)
	}

	record := storage.ShootRecord{
		ShootID:        uuid.NewString(),
		RoundID:        r.def.Round.ID,
		SubTypeID:      r.subType.ID,
		Face:           face.String(),
		InnerTenArcher: innerTen,
		Use2023:        req.Use2023,
		Note:           req.Note,
		ShotAtUTC:      time.Now().UTC(),
	}
	if err := s.store.CreateShoot(record); err != nil {
		return "", s.wrap(err, "create shoot")
	}

	s.logger.Info("Shoot created",
		slog.String("shoot_id", record.ShootID),
		slog.String("round", r.def.Round.Name),
		slog.String("sub_type", r.subType.Name),
	)
	return record.ShootID, nil
}

type loadedShoot struct {
	record      storage.ShootRecord
	round       resolved
	face        core.Face
	scoringType scoring.Type
	arrows      []core.Arrow
}

func (s *Service) loadShoot(shootID string) (*loadedShoot, error) {
	record, err := s.store.GetShoot(shootID)
	if err != nil {
		return nil, s.wrap(err, "shoot lookup")
	}
	def, err := s.store.GetRoundByID(record.RoundID)
	if err != nil {
		return nil, s.wrap(err, "round lookup")
	}
	r, err := s.narrow(def, record.SubTypeID)
	if err != nil {
		return nil, err
	}
	arrows, err := s.store.GetArrows(shootID)
	if err != nil {
		return nil, s.wrap(err, "shoot arrows")
	}

	face, err := core.ParseFace(record.Face)
	if err != nil {
		return nil, s.wrap(err, "shoot face")
	}
	st := scoring.GetScoringType(def.Round, face)
	if record.IsImperial {
		st = scoring.Imperial
	}
	return &loadedShoot{record: record, round: r, face: face, scoringType: st, arrows: arrows}, nil
}

// AddEnd appends one end of arrows to a shoot
func (s *Service) AddEnd(req core.EndRequest) (*ShootSummary, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if len(req.Xs) > len(req.Arrows) {
		return nil, invalid("%d X flags for %d arrows", len(req.Xs), len(req.Arrows))
	}

	shoot, err := s.loadShoot(req.ShootID)
	if err != nil {
		return nil, err
	}

	arrows := make([]core.Arrow, len(req.Arrows))
	for i, score := range req.Arrows {
		isX := i < len(req.Xs) && req.Xs[i]
		a, err := core.NewArrow(score, isX)
		if err != nil {
			return nil, &core.RequestError{Code: core.ErrInvalidArrow, Message: "invalid arrow", Details: err.Error(), Err: err}
		}
		if !shoot.scoringType.IsValidScore(a.Score) {
			return nil, &core.RequestError{
				Code:    core.ErrInvalidArrow,
				Message: "invalid arrow",
				Details: fmt.Sprintf("a %s face cannot score %s, it scores %v",
					shoot.scoringType, a.Text(), shoot.scoringType.ZoneScores()),
			}
		}
		arrows[i] = a
	}

	total := round.TotalArrows(shoot.round.def.ArrowCounts)
	if len(shoot.arrows)+len(arrows) > total {
		return nil, invalid("round has %d arrows, %d already shot", total, len(shoot.arrows))
	}

	if _, err := s.store.AppendArrows(req.ShootID, arrows); err != nil {
		return nil, s.wrap(err, "add end")
	}
	return s.ShootSummary(req.ShootID)
}

// ShootSummary builds the score pad and handicap for a shoot
func (s *Service) ShootSummary(shootID string) (*ShootSummary, error) {
	shoot, err := s.loadShoot(shootID)
	if err != nil {
		return nil, err
	}
	return s.summarise(shoot)
}

func (s *Service) summarise(shoot *loadedShoot) (*ShootSummary, error) {
	def := shoot.round.def
	in := shoot.round.input(shoot.record.InnerTenArcher, shoot.record.Use2023, len(shoot.arrows), []core.Face{shoot.face})

	legs, err := round.Legs(def.Round, def.ArrowCounts, shoot.round.distances)
	if err != nil {
		return nil, s.wrap(err, "round geometry")
	}

	pad, err := scorepad.New(shoot.arrows, s.opts.EndSize, s.goldsType(def.Round, shoot.record.IsImperial), legs, def.Round.IsMetric)
	if err != nil {
		return nil, s.wrap(err, "score pad")
	}

	total := round.TotalArrows(def.ArrowCounts)
	summary := &ShootSummary{
		Shoot:    shoot.record,
		Round:    def.Round,
		SubType:  shoot.round.subType,
		Pad:      pad,
		Score:    pad.Score,
		Arrows:   len(shoot.arrows),
		Total:    total,
		MaxScore: len(shoot.arrows) * shoot.scoringType.MaxScorePerArrow(),
	}

	// Converted scores no longer match the round's face model
	if len(shoot.arrows) > 0 && !shoot.record.IsImperial {
		h, err := s.engine.HandicapForRound(in, pad.Score)
		if err == nil {
			rounded := handicap.RoundHandicap(h)
			summary.Handicap = &h
			summary.Rounded = &rounded
		}
	}
	return summary, nil
}

func (s *Service) goldsType(r round.Round, isImperial bool) core.GoldsType {
	if g, err := core.ParseGoldsType(s.opts.Golds); s.opts.Golds != "" && err == nil {
		return g
	}
	if isImperial {
		return core.GoldsNines
	}
	return core.DefaultGoldsType(r.IsOutdoor, r.IsMetric)
}

// ConvertShootToImperial rescores a ten-zone shoot on five-zone values
func (s *Service) ConvertShootToImperial(shootID string) (*ShootSummary, error) {
	shoot, err := s.loadShoot(shootID)
	if err != nil {
		return nil, err
	}
	if shoot.scoringType != scoring.Metric {
		return nil, invalid("only ten-zone scores can be converted, shoot uses %s", shoot.scoringType)
	}

	converted := make([]core.Arrow, len(shoot.arrows))
	for i, a := range shoot.arrows {
		converted[i] = a.ToImperial()
	}
	if err := s.store.ReplaceArrows(shootID, converted, true); err != nil {
		return nil, s.wrap(err, "convert shoot")
	}

	s.logger.Info("Shoot converted to imperial", slog.String("shoot_id", shootID), slog.Int("arrows", len(converted)))
	return s.ShootSummary(shootID)
}

// Shoots lists stored shoots, optionally for one round
func (s *Service) Shoots(roundName string) ([]storage.ShootRecord, error) {
	shoots, err := s.store.ListShoots(roundName)
	if err != nil {
		return nil, s.wrap(err, "list shoots")
	}
	return shoots, nil
}

func (s *Service) DeleteShoot(shootID string) error {
	if err := s.store.DeleteShoot(shootID); err != nil {
		return s.wrap(err, "delete shoot")
	}
	s.logger.Info("Shoot deleted", slog.String("shoot_id", shootID))
	return nil
}
