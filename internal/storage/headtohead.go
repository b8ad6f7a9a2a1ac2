package storage

import (
	"database/sql"
	"fmt"

	"archery/internal/headtohead"
)

func (s *Store) CreateHeadToHead(record HeadToHeadRecord) error {
	return s.withTx("create_head_to_head", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO head_to_heads (
			shoot_id, team_size, is_set_points, is_standard_format, end_size
		) VALUES (?, ?, ?, ?, ?)`,
			record.ShootID, record.TeamSize, record.IsSetPoints, record.IsStandardFormat, record.EndSize,
		)
		if err != nil {
			return fmt.Errorf("insert head to head: %w", err)
		}
		return nil
	})
}

func (s *Store) GetHeadToHead(shootID string) (HeadToHeadRecord, error) {
	var r HeadToHeadRecord
	err := s.db.QueryRow(`SELECT shoot_id, team_size, is_set_points, is_standard_format, end_size
		FROM head_to_heads WHERE shoot_id = ?`, shootID).
		Scan(&r.ShootID, &r.TeamSize, &r.IsSetPoints, &r.IsStandardFormat, &r.EndSize)
	if err != nil {
		return r, notFound(err, "head to head "+shootID)
	}
	return r, nil
}

// AddMatch appends a match and returns its number
func (s *Store) AddMatch(record MatchRecord) (int, error) {
	err := s.withTx("add_match", func(tx *sql.Tx) error {
		if err := tx.QueryRow(`SELECT COALESCE(MAX(match_number), 0) + 1 FROM h2h_matches WHERE shoot_id = ?`,
			record.ShootID).Scan(&record.MatchNumber); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO h2h_matches (
			shoot_id, match_number, opponent, opponent_rank, is_shoot_off_win
		) VALUES (?, ?, ?, ?, ?)`,
			record.ShootID, record.MatchNumber, record.Opponent, record.OpponentRank, record.IsShootOffWin,
		)
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return record.MatchNumber, nil
}

func (s *Store) ListMatches(shootID string) ([]MatchRecord, error) {
	rows, err := s.db.Query(`SELECT shoot_id, match_number, opponent, opponent_rank, is_shoot_off_win
		FROM h2h_matches WHERE shoot_id = ? ORDER BY match_number`, shootID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(&m.ShootID, &m.MatchNumber, &m.Opponent, &m.OpponentRank, &m.IsShootOffWin); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}

func (s *Store) SetShootOffWin(shootID string, match int, win bool) error {
	return s.withTx("set_shoot_off_win", func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE h2h_matches SET is_shoot_off_win = ? WHERE shoot_id = ? AND match_number = ?`,
			win, shootID, match)
		if err != nil {
			return err
		}
		return checkAffected(res, fmt.Sprintf("match %d", match))
	})
}

// ReplaceSetDetails overwrites every row of one set
func (s *Store) ReplaceSetDetails(shootID string, match, set int, details []headtohead.Detail) error {
	return s.withTx("replace_set", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM h2h_details WHERE shoot_id = ? AND match_number = ? AND set_number = ?`,
			shootID, match, set); err != nil {
			return err
		}
		for _, d := range details {
			if _, err := tx.Exec(`INSERT INTO h2h_details (
				shoot_id, match_number, set_number, type, arrow_number, is_total, score, is_x
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				shootID, match, set, int(d.Type), d.ArrowNumber, d.IsTotal, d.Score, d.IsX); err != nil {
				return fmt.Errorf("insert set %d row: %w", set, err)
			}
		}
		return nil
	})
}

// DeleteSet removes a set and moves later sets down by one
func (s *Store) DeleteSet(shootID string, match, set int) error {
	return s.withTx("delete_set", func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM h2h_details WHERE shoot_id = ? AND match_number = ? AND set_number = ?`,
			shootID, match, set)
		if err != nil {
			return err
		}
		if err := checkAffected(res, fmt.Sprintf("set %d", set)); err != nil {
			return err
		}

		// Two passes through negative numbers so the primary key never collides
		if _, err := tx.Exec(`UPDATE h2h_details SET set_number = -(set_number - 1)
			WHERE shoot_id = ? AND match_number = ? AND set_number > ?`, shootID, match, set); err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE h2h_details SET set_number = -set_number
			WHERE shoot_id = ? AND match_number = ? AND set_number < 0`, shootID, match)
		return err
	})
}

func (s *Store) DeleteMatch(shootID string, match int) error {
	return s.withTx("delete_match", func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM h2h_matches WHERE shoot_id = ? AND match_number = ?`, shootID, match)
		if err != nil {
			return err
		}
		return checkAffected(res, fmt.Sprintf("match %d", match))
	})
}

// GetDetails returns every head-to-head row of a shoot ordered by match, set, type and arrow
func (s *Store) GetDetails(shootID string) ([]headtohead.Detail, error) {
	rows, err := s.db.Query(`SELECT match_number, set_number, type, arrow_number, is_total, score, is_x
		FROM h2h_details WHERE shoot_id = ?
		ORDER BY match_number, set_number, type, arrow_number`, shootID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []headtohead.Detail
	for rows.Next() {
		var d headtohead.Detail
		var t int
		if err := rows.Scan(&d.Match, &d.SetNumber, &t, &d.ArrowNumber, &d.IsTotal, &d.Score, &d.IsX); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		d.Type = headtohead.RowType(t)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}
