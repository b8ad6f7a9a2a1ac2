package core

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MissScore = 0
	MaxScore  = 10
)

// Arrow is a single scored arrow. Score 0 is a miss, IsX marks an inner ten.
type Arrow struct {
	Score int  `json:"score"`
	IsX   bool `json:"isX,omitempty"`
}

// NewArrow validates the score range and that only a ten can be an X
func NewArrow(score int, isX bool) (Arrow, error) {
	if score < MissScore || score > MaxScore {
		return Arrow{}, fmt.Errorf("arrow score out of range: %d", score)
	}
	if isX && score != MaxScore {
		return Arrow{}, fmt.Errorf("only a 10 can be an X, got %d", score)
	}
	return Arrow{Score: score, IsX: isX}, nil
}

// ParseArrow reads the text form used on score sheets: X, 10..1, M
func ParseArrow(s string) (Arrow, error) {
	switch t := strings.ToUpper(strings.TrimSpace(s)); t {
	case "X":
		return Arrow{Score: MaxScore, IsX: true}, nil
	case "M", "0":
		return Arrow{Score: MissScore}, nil
	default:
		v, err := strconv.Atoi(t)
		if err != nil {
			return Arrow{}, fmt.Errorf("invalid arrow %q", s)
		}
		return NewArrow(v, false)
	}
}

// ParseEnd splits a space or comma separated end into arrows
func ParseEnd(s string) ([]Arrow, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	arrows := make([]Arrow, 0, len(fields))
	for _, f := range fields {
		a, err := ParseArrow(f)
		if err != nil {
			return nil, err
		}
		arrows = append(arrows, a)
	}
	return arrows, nil
}

func (a Arrow) Text() string {
	switch {
	case a.IsX:
		return "X"
	case a.Score == MissScore:
		return "M"
	default:
		return strconv.Itoa(a.Score)
	}
}

func (a Arrow) IsHit() bool {
	return a.Score > MissScore
}

func (a Arrow) IsGold(g GoldsType) bool {
	switch g {
	case GoldsNines:
		return a.Score >= 9
	case GoldsXs:
		return a.IsX
	default:
		return a.Score == MaxScore
	}
}

// ToImperial maps a ten-zone score onto the five-zone imperial values
func (a Arrow) ToImperial() Arrow {
	if a.Score == MissScore {
		return Arrow{Score: MissScore}
	}
	// 10,9 -> 9; 8,7 -> 7; 6,5 -> 5; 4,3 -> 3; 2,1 -> 1
	v := a.Score
	if v%2 == 0 {
		v--
	}
	return Arrow{Score: v}
}

// SumArrows totals a slice of arrows
func SumArrows(arrows []Arrow) int {
	total := 0
	for _, a := range arrows {
		total += a.Score
	}
	return total
}
