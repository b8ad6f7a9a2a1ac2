package core

import (
	"fmt"
	"strings"
)

// Face is the target face an archer shoots at for one leg of a round
type Face int

const (
	FaceFull Face = iota
	FaceHalf
	FaceTriple
	FaceFitaSix
	FaceWorcesterFive
)

func (f Face) String() string {
	switch f {
	case FaceHalf:
		return "half"
	case FaceTriple:
		return "triple"
	case FaceFitaSix:
		return "fita-six"
	case FaceWorcesterFive:
		return "worcester-five"
	default:
		return "full"
	}
}

// ParseFace accepts the names produced by Face.String
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return FaceFull, nil
	case "half":
		return FaceHalf, nil
	case "triple":
		return FaceTriple, nil
	case "fita-six", "fita_six", "six":
		return FaceFitaSix, nil
	case "worcester-five", "worcester_five", "five":
		return FaceWorcesterFive, nil
	default:
		return FaceFull, fmt.Errorf("unknown face: %q", s)
	}
}

// GoldsType selects which arrows count towards the golds column
type GoldsType int

const (
	GoldsTens GoldsType = iota
	GoldsNines
	GoldsXs
)

func (g GoldsType) String() string {
	switch g {
	case GoldsNines:
		return "9s"
	case GoldsXs:
		return "Xs"
	default:
		return "10s"
	}
}

// DefaultGoldsType is 9s for outdoor imperial rounds and 10s everywhere else
func DefaultGoldsType(isOutdoor, isMetric bool) GoldsType {
	if isOutdoor && !isMetric {
		return GoldsNines
	}
	return GoldsTens
}

func ParseGoldsType(s string) (GoldsType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "10", "10s", "tens":
		return GoldsTens, nil
	case "9", "9s", "nines":
		return GoldsNines, nil
	case "x", "xs":
		return GoldsXs, nil
	default:
		return GoldsTens, fmt.Errorf("unknown golds type: %q", s)
	}
}
