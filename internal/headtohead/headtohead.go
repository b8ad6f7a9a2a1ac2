// Package headtohead derives set results, running totals and match completion
// from the stored rows of a head-to-head competition.
package headtohead

import (
	"errors"
	"fmt"
	"sort"

	"archery/internal/core"
)

// ErrStructure is wrapped when stored rows contradict each other
var ErrStructure = errors.New("inconsistent head-to-head rows")

type Result int

const (
	Incomplete Result = iota
	Win
	Loss
	Tie
	Unknown
)

func (r Result) String() string {
	switch r {
	case Incomplete:
		return "incomplete"
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// resultCodes is the stored value of a RESULT row, indexed by code
var resultCodes = []Result{Loss, Tie, Win}

func resultFromCode(code int) Result {
	if code < 0 || code >= len(resultCodes) {
		return Unknown
	}
	return resultCodes[code]
}

// ResultCode is the value a RESULT row stores for r, or -1
func ResultCode(r Result) int {
	for code, res := range resultCodes {
		if res == r {
			return code
		}
	}
	return -1
}

type RowType int

const (
	Self RowType = iota + 1
	TeamMate
	Team
	Opponent
	ResultRow
)

func (t RowType) String() string {
	switch t {
	case Self:
		return "self"
	case TeamMate:
		return "team-mate"
	case Team:
		return "team"
	case Opponent:
		return "opponent"
	case ResultRow:
		return "result"
	default:
		return "unknown"
	}
}

func ParseRowType(s string) (RowType, error) {
	for t := Self; t <= ResultRow; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown row type %q", s)
}

// Detail is one persisted cell: an arrow, or the total of a whole row
type Detail struct {
	Match       int     `json:"match"`
	SetNumber   int     `json:"setNumber"`
	Type        RowType `json:"type"`
	ArrowNumber int     `json:"arrowNumber"`
	IsTotal     bool    `json:"isTotal"`
	Score       int     `json:"score"`
	IsX         bool    `json:"isX"`
}

// Config is the competition format shared by every match
type Config struct {
	TeamSize         int  `json:"teamSize"`
	IsSetPoints      bool `json:"isSetPoints"`
	IsStandardFormat bool `json:"isStandardFormat"`
	EndSize          int  `json:"endSize"` // 0 uses the format default
}

func (c Config) Validate() error {
	if c.TeamSize < 1 {
		return fmt.Errorf("%w: team size %d", ErrStructure, c.TeamSize)
	}
	if c.EndSize < 0 {
		return fmt.Errorf("%w: end size %d", ErrStructure, c.EndSize)
	}
	return nil
}

// WinScore is the set points needed to win a set-points match
func (c Config) WinScore() int {
	if c.TeamSize == 1 {
		return 6
	}
	return 5
}

// ShootOffSet is the number of the tie-break set in standard formats
func (c Config) ShootOffSet() int {
	if c.TeamSize == 1 {
		return 6
	}
	return 5
}

// ArrowsPerArcher in one set
func (c Config) ArrowsPerArcher(isShootOff bool) int {
	switch {
	case isShootOff:
		return 1
	case c.EndSize > 0:
		return c.EndSize
	case c.TeamSize == 1:
		return 3
	default:
		return 2
	}
}

// expectedArrows in a complete row of type t
func (c Config) expectedArrows(t RowType, isShootOff bool) int {
	per := c.ArrowsPerArcher(isShootOff)
	switch t {
	case Self:
		return per
	case TeamMate:
		return per * (c.TeamSize - 1)
	case Team, Opponent:
		return per * c.TeamSize
	default:
		return 0
	}
}

// Row is every cell of one type within a set
type Row struct {
	Type     RowType
	Arrows   []core.Arrow
	Total    *int
	Expected int
}

func (r Row) IsTotal() bool { return r.Total != nil }

func (r Row) IsComplete() bool {
	if r.Total != nil {
		return true
	}
	return r.Expected > 0 && len(r.Arrows) == r.Expected
}

// Score is the row total once the row is complete
func (r Row) Score() (int, bool) {
	if !r.IsComplete() {
		return 0, false
	}
	if r.Total != nil {
		return *r.Total, true
	}
	return core.SumArrows(r.Arrows), true
}

type Set struct {
	Number        int
	IsShootOff    bool
	isShootOffWin bool
	cfg           Config
	rows          map[RowType]Row
}

// NewSet groups one set's cells into rows
func NewSet(cfg Config, number int, details []Detail, isShootOff, isShootOffWin bool) (*Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grouped := make(map[RowType][]Detail)
	for _, d := range details {
		if d.SetNumber != number {
			return nil, fmt.Errorf("%w: set %d row in set %d", ErrStructure, d.SetNumber, number)
		}
		if d.Type < Self || d.Type > ResultRow {
			return nil, fmt.Errorf("%w: unknown row type %d", ErrStructure, d.Type)
		}
		grouped[d.Type] = append(grouped[d.Type], d)
	}

	s := &Set{
		Number:        number,
		IsShootOff:    isShootOff,
		isShootOffWin: isShootOffWin,
		cfg:           cfg,
		rows:          make(map[RowType]Row, len(grouped)),
	}
	for t, cells := range grouped {
		row, err := buildRow(cfg, t, cells, isShootOff)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", number, err)
		}
		s.rows[t] = row
	}
	return s, nil
}

func buildRow(cfg Config, t RowType, cells []Detail, isShootOff bool) (Row, error) {
	if cfg.TeamSize == 1 && (t == Team || t == TeamMate) {
		return Row{}, fmt.Errorf("%w: %s row for an individual", ErrStructure, t)
	}

	row := Row{Type: t, Expected: cfg.expectedArrows(t, isShootOff)}
	for _, c := range cells {
		if c.IsTotal {
			if len(cells) > 1 {
				return Row{}, fmt.Errorf("%w: %s row mixes a total with other cells", ErrStructure, t)
			}
			total := c.Score
			row.Total = &total
			return row, nil
		}
	}
	if t == ResultRow {
		return Row{}, fmt.Errorf("%w: result row must be a total", ErrStructure)
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].ArrowNumber < cells[j].ArrowNumber })
	for i, c := range cells {
		if c.ArrowNumber != i+1 {
			return Row{}, fmt.Errorf("%w: %s row arrow %d out of sequence", ErrStructure, t, c.ArrowNumber)
		}
		a, err := core.NewArrow(c.Score, c.IsX)
		if err != nil {
			return Row{}, fmt.Errorf("%w: %s row: %v", ErrStructure, t, err)
		}
		row.Arrows = append(row.Arrows, a)
	}
	if len(row.Arrows) > row.Expected {
		return Row{}, fmt.Errorf("%w: %s row has %d arrows, expected %d", ErrStructure, t, len(row.Arrows), row.Expected)
	}
	return row, nil
}

func (s *Set) Row(t RowType) (Row, bool) {
	r, ok := s.rows[t]
	return r, ok
}

// TeamSetScore is the archer's (or team's) score once every needed row is complete
func (s *Set) TeamSetScore() (int, bool) {
	if s.cfg.TeamSize == 1 {
		if r, ok := s.rows[Self]; ok {
			return r.Score()
		}
		return 0, false
	}

	if r, ok := s.rows[Team]; ok && r.IsComplete() {
		return r.Score()
	}
	self, okSelf := s.rows[Self]
	mates, okMates := s.rows[TeamMate]
	if !okSelf || !okMates {
		return 0, false
	}
	a, okA := self.Score()
	b, okB := mates.Score()
	if !okA || !okB {
		return 0, false
	}
	return a + b, true
}

func (s *Set) OpponentSetScore() (int, bool) {
	if r, ok := s.rows[Opponent]; ok {
		return r.Score()
	}
	return 0, false
}

func (s *Set) Result() Result {
	if r, ok := s.rows[ResultRow]; ok {
		res := resultFromCode(*r.Total)
		if s.IsShootOff && res == Tie {
			return Unknown
		}
		return res
	}

	team, ok := s.TeamSetScore()
	if !ok {
		return Incomplete
	}
	opp, ok := s.OpponentSetScore()
	if !ok {
		return Incomplete
	}

	switch {
	case team > opp:
		return Win
	case team < opp:
		return Loss
	case s.IsShootOff && s.isShootOffWin:
		return Win
	case s.IsShootOff:
		return Loss
	default:
		return Tie
	}
}

// ArrowsShot by this archer. Without an arrow row for the archer a complete
// team total stands in for the count.
func (s *Set) ArrowsShot() int {
	if r, ok := s.rows[Self]; ok {
		if r.IsTotal() {
			return r.Expected
		}
		return len(r.Arrows)
	}
	if r, ok := s.rows[Team]; ok && r.IsComplete() {
		total, _ := r.Score()
		return total
	}
	return 0
}

// Totals is one side of the score after a set
type Totals struct {
	Team     int `json:"team"`
	Opponent int `json:"opponent"`
}

type Match struct {
	Number        int
	IsShootOffWin bool
	Sets          []*Set
	cfg           Config
}

// NewMatch builds a match from all of its cells. Set numbers must run 1..n.
func NewMatch(cfg Config, number int, details []Detail, isShootOffWin bool) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bySet := make(map[int][]Detail)
	last := 0
	for _, d := range details {
		if d.Match != 0 && d.Match != number {
			return nil, fmt.Errorf("%w: match %d row in match %d", ErrStructure, d.Match, number)
		}
		bySet[d.SetNumber] = append(bySet[d.SetNumber], d)
		last = max(last, d.SetNumber)
	}

	m := &Match{Number: number, IsShootOffWin: isShootOffWin, cfg: cfg}
	for n := 1; n <= last; n++ {
		cells, ok := bySet[n]
		if !ok {
			return nil, fmt.Errorf("%w: match %d is missing set %d", ErrStructure, number, n)
		}
		if cfg.IsStandardFormat && n > cfg.ShootOffSet() {
			return nil, fmt.Errorf("%w: set %d after the shoot-off", ErrStructure, n)
		}
		set, err := NewSet(cfg, n, cells, m.isShootOff(n), isShootOffWin)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", number, err)
		}
		m.Sets = append(m.Sets, set)
	}
	return m, nil
}

func (m *Match) isShootOff(setNumber int) bool {
	return m.cfg.IsStandardFormat && setNumber == m.cfg.ShootOffSet()
}

// RunningTotals after each set. Entries from the first set without a usable
// result onwards are nil.
func (m *Match) RunningTotals() []*Totals {
	out := make([]*Totals, len(m.Sets))
	var acc Totals
	for i, s := range m.Sets {
		res := s.Result()
		if res == Incomplete || res == Unknown {
			break
		}

		// a shoot-off only ever adds a point and may be decided without scores
		if m.cfg.IsSetPoints || s.IsShootOff {
			acc = addSetPoints(acc, res, s.IsShootOff)
		} else {
			team, okT := s.TeamSetScore()
			opp, okO := s.OpponentSetScore()
			if !okT || !okO {
				break
			}
			acc.Team += team
			acc.Opponent += opp
		}

		t := acc
		out[i] = &t
	}
	return out
}

func addSetPoints(acc Totals, res Result, isShootOff bool) Totals {
	if isShootOff {
		switch res {
		case Win:
			acc.Team++
		case Loss:
			acc.Opponent++
		}
		return acc
	}

	switch res {
	case Win:
		acc.Team += 2
	case Loss:
		acc.Opponent += 2
	case Tie:
		acc.Team++
		acc.Opponent++
	}
	return acc
}

func (m *Match) lastTotals() *Totals {
	if len(m.Sets) == 0 {
		return nil
	}
	totals := m.RunningTotals()
	return totals[len(totals)-1]
}

func (m *Match) IsComplete() bool {
	last := m.lastTotals()

	if m.cfg.IsSetPoints {
		win := m.cfg.WinScore()
		return last != nil && (last.Team >= win || last.Opponent >= win)
	}

	if !m.cfg.IsStandardFormat {
		return false
	}
	n, so := len(m.Sets), m.cfg.ShootOffSet()
	if n < so-1 || last == nil {
		return false
	}
	if n >= so {
		return true
	}
	return last.Team != last.Opponent
}

// Result of the whole match, Incomplete until IsComplete
func (m *Match) Result() Result {
	if !m.IsComplete() {
		return Incomplete
	}
	last := m.lastTotals()
	switch {
	case last.Team > last.Opponent:
		return Win
	case last.Team < last.Opponent:
		return Loss
	default:
		return Tie
	}
}

func (m *Match) ArrowsShot() int {
	total := 0
	for _, s := range m.Sets {
		total += s.ArrowsShot()
	}
	return total
}
