package core

import "fmt"

// Request types

// RoundSelector picks a stored round and one of its sub types
type RoundSelector struct {
	Round     string `json:"round" validate:"required,max=64"`
	SubTypeID int    `json:"subType" validate:"min=0,max=50"` // 0 selects the first sub type
}

type ScoreRequest struct {
	RoundSelector
	Handicap       float64  `json:"handicap" validate:"min=0,max=150"`
	Arrows         int      `json:"arrows,omitempty" validate:"omitempty,min=1,max=1000"`
	InnerTenArcher bool     `json:"innerTen,omitempty"`
	Use2023        bool     `json:"use2023,omitempty"`
	Faces          []string `json:"faces,omitempty" validate:"omitempty,max=12,dive,oneof=full half triple fita-six worcester-five"`
}

type HandicapRequest struct {
	RoundSelector
	Score          int      `json:"score" validate:"min=0,max=10000"`
	Arrows         int      `json:"arrows,omitempty" validate:"omitempty,min=1,max=1000"`
	InnerTenArcher bool     `json:"innerTen,omitempty"`
	Use2023        bool     `json:"use2023,omitempty"`
	Faces          []string `json:"faces,omitempty" validate:"omitempty,max=12,dive,oneof=full half triple fita-six worcester-five"`
}

type TableRequest struct {
	RoundSelector
	From           int  `json:"from" validate:"min=0,max=150"`
	To             int  `json:"to" validate:"min=0,max=150,gtefield=From"`
	InnerTenArcher bool `json:"innerTen,omitempty"`
	Use2023        bool `json:"use2023,omitempty"`
}

type CreateShootRequest struct {
	RoundSelector
	Face           string `json:"face,omitempty" validate:"omitempty,oneof=full half triple fita-six worcester-five"`
	InnerTenArcher bool   `json:"innerTen,omitempty"`
	Use2023        bool   `json:"use2023,omitempty"`
	Note           string `json:"note,omitempty" validate:"max=255"`
}

type EndRequest struct {
	ShootID string `json:"shootId" validate:"required,uuid"`
	Arrows  []int  `json:"arrows" validate:"required,min=1,max=12,dive,min=0,max=10"`
	Xs      []bool `json:"xs,omitempty" validate:"omitempty,max=12"`
}

type HeadToHeadRequest struct {
	ShootID          string `json:"shootId" validate:"required,uuid"`
	TeamSize         int    `json:"teamSize" validate:"required,min=1,max=3"`
	IsSetPoints      bool   `json:"isSetPoints"`
	IsStandardFormat bool   `json:"isStandardFormat"`
	EndSize          int    `json:"endSize,omitempty" validate:"omitempty,min=1,max=6"`
}

type MatchRequest struct {
	ShootID      string `json:"shootId" validate:"required,uuid"`
	Opponent     string `json:"opponent,omitempty" validate:"max=64"`
	OpponentRank int    `json:"opponentRank,omitempty" validate:"min=0,max=1000"`
}

// SetRowRequest is one row of a set: arrows, or a total when Total is set
type SetRowRequest struct {
	Type   string `json:"type" validate:"required,oneof=self team-mate team opponent result"`
	Arrows []int  `json:"arrows,omitempty" validate:"omitempty,max=18,dive,min=0,max=10"`
	Xs     []bool `json:"xs,omitempty" validate:"omitempty,max=18"`
	Total  *int   `json:"total,omitempty" validate:"omitempty,min=0,max=180"`
}

type SetRequest struct {
	ShootID string          `json:"shootId" validate:"required,uuid"`
	Match   int             `json:"match" validate:"required,min=1"`
	Set     int             `json:"set" validate:"required,min=1,max=10"`
	Rows    []SetRowRequest `json:"rows" validate:"required,min=1,max=5,dive"`
}

type SightMarkRequest struct {
	Distance int     `json:"distance" validate:"required,min=1,max=200"`
	IsMetric bool    `json:"isMetric"`
	Value    float64 `json:"value" validate:"min=0,max=100"`
	Note     string  `json:"note,omitempty" validate:"max=255"`
	IsMarked bool    `json:"isMarked,omitempty"`
}

// Response types

type ScoreResponse struct {
	Round     string  `json:"round"`
	SubType   string  `json:"subType"`
	Handicap  float64 `json:"handicap"`
	Score     int     `json:"score"`
	Arrows    int     `json:"arrows"`
	Allowance *int    `json:"allowance,omitempty"`
}

type HandicapResponse struct {
	Round    string  `json:"round"`
	SubType  string  `json:"subType"`
	Score    int     `json:"score"`
	Handicap float64 `json:"handicap"`
	Rounded  int     `json:"rounded"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// RequestError is returned when a request fails validation or cannot be served
type RequestError struct {
	Code    string
	Message string
	Details string
	Err     error // underlying cause, if any
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Response converts the error into its wire form
func (e *RequestError) Response() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code, Details: e.Details}
}
