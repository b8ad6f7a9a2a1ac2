// Package round holds round geometry: distances, faces and arrow counts per leg.
package round

import (
	"errors"
	"fmt"
	"sort"
)

const yardInMetres = 0.9144

// ErrInvalidGeometry is wrapped by every geometry validation failure
var ErrInvalidGeometry = errors.New("invalid round geometry")

// Round is read-only reference data describing a named round
type Round struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	IsOutdoor   bool   `json:"isOutdoor"`
	IsMetric    bool   `json:"isMetric"`
}

// SubType is one distance variant of a round, e.g. the ladies' distances
type SubType struct {
	RoundID int    `json:"roundId"`
	ID      int    `json:"id"`
	Name    string `json:"name"`
}

// Distance is one leg's range, in metres or yards depending on Round.IsMetric
type Distance struct {
	RoundID        int `json:"roundId"`
	DistanceNumber int `json:"distanceNumber"`
	SubTypeID      int `json:"subTypeId"`
	Distance       int `json:"distance"`
}

// ArrowCount is the number of arrows shot on one leg and the face size used
type ArrowCount struct {
	RoundID        int     `json:"roundId"`
	DistanceNumber int     `json:"distanceNumber"`
	FaceSizeCm     float64 `json:"faceSizeCm"`
	ArrowCount     int     `json:"arrowCount"`
}

// Leg pairs a distance with its arrow count
type Leg struct {
	DistanceNumber int
	Distance       int
	RangeMetres    float64
	FaceSizeCm     float64
	ArrowCount     int
}

// Legs validates and pairs arrow counts with distances in distance-number order.
// Both lists must belong to r, have equal non-zero length, share one sub type
// and carry the same distance numbers.
func Legs(r Round, arrowCounts []ArrowCount, distances []Distance) ([]Leg, error) {
	if len(arrowCounts) == 0 || len(distances) == 0 {
		return nil, fmt.Errorf("%w: no arrow counts or distances", ErrInvalidGeometry)
	}
	if len(arrowCounts) != len(distances) {
		return nil, fmt.Errorf("%w: %d arrow counts for %d distances",
			ErrInvalidGeometry, len(arrowCounts), len(distances))
	}

	counts := append([]ArrowCount(nil), arrowCounts...)
	dists := append([]Distance(nil), distances...)
	sort.Slice(counts, func(i, j int) bool { return counts[i].DistanceNumber < counts[j].DistanceNumber })
	sort.Slice(dists, func(i, j int) bool { return dists[i].DistanceNumber < dists[j].DistanceNumber })

	subType := dists[0].SubTypeID
	legs := make([]Leg, len(counts))
	for i := range counts {
		c, d := counts[i], dists[i]
		if c.RoundID != r.ID || d.RoundID != r.ID {
			return nil, fmt.Errorf("%w: leg %d does not belong to round %d", ErrInvalidGeometry, i+1, r.ID)
		}
		if d.SubTypeID != subType {
			return nil, fmt.Errorf("%w: distances span sub types %d and %d", ErrInvalidGeometry, subType, d.SubTypeID)
		}
		if c.DistanceNumber != d.DistanceNumber {
			return nil, fmt.Errorf("%w: distance number %d has no matching arrow count", ErrInvalidGeometry, d.DistanceNumber)
		}
		if c.ArrowCount <= 0 || c.FaceSizeCm <= 0 || d.Distance <= 0 {
			return nil, fmt.Errorf("%w: leg %d has non-positive values", ErrInvalidGeometry, c.DistanceNumber)
		}
		legs[i] = Leg{
			DistanceNumber: c.DistanceNumber,
			Distance:       d.Distance,
			RangeMetres:    RangeInMetres(d.Distance, r.IsMetric),
			FaceSizeCm:     c.FaceSizeCm,
			ArrowCount:     c.ArrowCount,
		}
	}
	return legs, nil
}

// RangeInMetres converts a yardage when the round is imperial
func RangeInMetres(distance int, isMetric bool) float64 {
	if isMetric {
		return float64(distance)
	}
	return float64(distance) * yardInMetres
}

// TotalArrows sums the arrows over all legs
func TotalArrows(arrowCounts []ArrowCount) int {
	total := 0
	for _, c := range arrowCounts {
		total += c.ArrowCount
	}
	return total
}

// Definition bundles a round with everything stored against it
type Definition struct {
	Round       Round        `json:"round"`
	SubTypes    []SubType    `json:"subTypes"`
	Distances   []Distance   `json:"distances"`
	ArrowCounts []ArrowCount `json:"arrowCounts"`
}

// ForSubType returns the distances of one sub type. Zero selects the first.
func (d Definition) ForSubType(subTypeID int) (SubType, []Distance, error) {
	if len(d.SubTypes) == 0 {
		return SubType{}, nil, fmt.Errorf("%w: round %s has no sub types", ErrInvalidGeometry, d.Round.Name)
	}
	if subTypeID == 0 {
		subTypeID = d.SubTypes[0].ID
	}

	var sub *SubType
	for i := range d.SubTypes {
		if d.SubTypes[i].ID == subTypeID {
			sub = &d.SubTypes[i]
			break
		}
	}
	if sub == nil {
		return SubType{}, nil, fmt.Errorf("%w: round %s has no sub type %d", ErrInvalidGeometry, d.Round.Name, subTypeID)
	}

	var out []Distance
	for _, dist := range d.Distances {
		if dist.SubTypeID == subTypeID {
			out = append(out, dist)
		}
	}
	return *sub, out, nil
}
