package service

import (
	"log/slog"

	"archery/internal/core"
	"archery/internal/handicap"
	"archery/internal/round"
)

// resolved is a stored round narrowed to one sub type
type resolved struct {
	def       round.Definition
	subType   round.SubType
	distances []round.Distance
}

func (s *Service) resolveRound(sel core.RoundSelector) (resolved, error) {
	def, err := s.store.GetRound(sel.Round)
	if err != nil {
		return resolved{}, s.wrap(err, "round lookup")
	}
	return s.narrow(def, sel.SubTypeID)
}

func (s *Service) narrow(def round.Definition, subTypeID int) (resolved, error) {
	sub, distances, err := def.ForSubType(subTypeID)
	if err != nil {
		return resolved{}, s.wrap(err, "round lookup")
	}
	return resolved{def: def, subType: sub, distances: distances}, nil
}

func (r resolved) input(innerTen, use2023 bool, arrows int, faces []core.Face) handicap.Input {
	return handicap.Input{
		Round:          r.def.Round,
		ArrowCounts:    r.def.ArrowCounts,
		Distances:      r.distances,
		InnerTenArcher: innerTen,
		Arrows:         arrows,
		Use2023:        use2023,
		Faces:          faces,
	}
}

func parseFaces(names []string) ([]core.Face, error) {
	faces := make([]core.Face, 0, len(names))
	for _, n := range names {
		f, err := core.ParseFace(n)
		if err != nil {
			return nil, invalid("%v", err)
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// ScoreForRound predicts the score of an archer of the given handicap
func (s *Service) ScoreForRound(req core.ScoreRequest) (*core.ScoreResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if req.Handicap > handicap.MaxHandicap(req.Use2023) {
		return nil, invalid("handicap must be at most %v", handicap.MaxHandicap(req.Use2023))
	}
	faces, err := parseFaces(req.Faces)
	if err != nil {
		return nil, err
	}
	r, err := s.resolveRound(req.RoundSelector)
	if err != nil {
		return nil, err
	}

	in := r.input(req.InnerTenArcher, req.Use2023, req.Arrows, faces)
	score, err := s.engine.ScoreForRound(in, req.Handicap)
	if err != nil {
		return nil, s.wrap(err, "score")
	}

	arrows := req.Arrows
	if arrows == 0 {
		arrows = round.TotalArrows(r.def.ArrowCounts)
	}

	s.logger.Debug("Score predicted",
		slog.String("round", r.def.Round.Name),
		slog.Float64("handicap", req.Handicap),
		slog.Int("score", score),
	)
	return &core.ScoreResponse{
		Round:    r.def.Round.DisplayName,
		SubType:  r.subType.Name,
		Handicap: req.Handicap,
		Score:    score,
		Arrows:   arrows,
	}, nil
}

// HandicapForRound finds the handicap a score represents
func (s *Service) HandicapForRound(req core.HandicapRequest) (*core.HandicapResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	faces, err := parseFaces(req.Faces)
	if err != nil {
		return nil, err
	}
	r, err := s.resolveRound(req.RoundSelector)
	if err != nil {
		return nil, err
	}

	h, err := s.engine.HandicapForRound(r.input(req.InnerTenArcher, req.Use2023, req.Arrows, faces), req.Score)
	if err != nil {
		return nil, s.wrap(err, "handicap")
	}

	return &core.HandicapResponse{
		Round:    r.def.Round.DisplayName,
		SubType:  r.subType.Name,
		Score:    req.Score,
		Handicap: h,
		Rounded:  handicap.RoundHandicap(h),
	}, nil
}

// AllowanceForRound is the allowance an archer of the given handicap receives
func (s *Service) AllowanceForRound(req core.ScoreRequest) (*core.ScoreResponse, error) {
	resp, err := s.ScoreForRound(req)
	if err != nil {
		return nil, err
	}
	allowance := handicap.Allowance(resp.Score)
	resp.Allowance = &allowance
	return resp, nil
}

// HandicapTable lists predicted scores for a range of whole handicaps
func (s *Service) HandicapTable(req core.TableRequest) (string, []handicap.TableRow, error) {
	if err := s.check(req); err != nil {
		return "", nil, err
	}
	if float64(req.To) > handicap.MaxHandicap(req.Use2023) {
		return "", nil, invalid("to must be at most %v", handicap.MaxHandicap(req.Use2023))
	}
	r, err := s.resolveRound(req.RoundSelector)
	if err != nil {
		return "", nil, err
	}

	rows, err := s.engine.Table(r.input(req.InnerTenArcher, req.Use2023, 0, nil), req.From, req.To)
	if err != nil {
		return "", nil, s.wrap(err, "table")
	}
	return r.subType.Name, rows, nil
}
