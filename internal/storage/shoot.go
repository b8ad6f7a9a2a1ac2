package storage

import (
	"database/sql"
	"fmt"

	"archery/internal/core"
)

// CreateShoot records a new shoot
func (s *Store) CreateShoot(record ShootRecord) error {
	return s.withTx("create_shoot", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO shoots (
			shoot_id, round_id, sub_type_id, face,
			inner_ten_archer, use_2023, is_imperial, note, shot_at_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ShootID, record.RoundID, record.SubTypeID, record.Face,
			record.InnerTenArcher, record.Use2023, record.IsImperial, record.Note, record.ShotAtUTC,
		)
		if err != nil {
			return fmt.Errorf("insert shoot: %w", err)
		}
		return nil
	})
}

const shootColumns = `shoot_id, round_id, sub_type_id, face,
	inner_ten_archer, use_2023, is_imperial, note, shot_at_utc`

func scanShoot(sc interface{ Scan(...any) error }) (ShootRecord, error) {
	var r ShootRecord
	err := sc.Scan(
		&r.ShootID, &r.RoundID, &r.SubTypeID, &r.Face,
		&r.InnerTenArcher, &r.Use2023, &r.IsImperial, &r.Note, &r.ShotAtUTC,
	)
	return r, err
}

func (s *Store) GetShoot(shootID string) (ShootRecord, error) {
	r, err := scanShoot(s.db.QueryRow(`SELECT `+shootColumns+` FROM shoots WHERE shoot_id = ?`, shootID))
	if err != nil {
		return r, notFound(err, "shoot "+shootID)
	}
	return r, nil
}

// ListShoots retrieves shoots, newest first, optionally for one round
func (s *Store) ListShoots(roundName string) ([]ShootRecord, error) {
	query := `SELECT ` + shootColumns + ` FROM shoots WHERE 1=1`

	var args []interface{}

	if roundName != "" && roundName != "*" {
		query += " AND round_id = (SELECT round_id FROM rounds WHERE name = ?)"
		args = append(args, roundName)
	}

	query += " ORDER BY shot_at_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var shoots []ShootRecord
	for rows.Next() {
		r, err := scanShoot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		shoots = append(shoots, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return shoots, nil
}

// AppendArrows adds arrows after the last stored arrow and returns the new count
func (s *Store) AppendArrows(shootID string, arrows []core.Arrow) (int, error) {
	var count int
	err := s.withTx("append_arrows", func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM shoots WHERE shoot_id = ?`, shootID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("shoot %s: %w", shootID, ErrNotFound)
		}

		if err := tx.QueryRow(`SELECT COALESCE(MAX(arrow_number), 0) FROM arrow_scores WHERE shoot_id = ?`,
			shootID).Scan(&count); err != nil {
			return err
		}
		for _, a := range arrows {
			count++
			if _, err := tx.Exec(`INSERT INTO arrow_scores (shoot_id, arrow_number, score, is_x) VALUES (?, ?, ?, ?)`,
				shootID, count, a.Score, a.IsX); err != nil {
				return fmt.Errorf("insert arrow %d: %w", count, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceArrows overwrites every arrow of a shoot and flags it imperial when asked
func (s *Store) ReplaceArrows(shootID string, arrows []core.Arrow, isImperial bool) error {
	return s.withTx("replace_arrows", func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE shoots SET is_imperial = ? WHERE shoot_id = ?`, isImperial, shootID)
		if err != nil {
			return err
		}
		if err := checkAffected(res, "shoot "+shootID); err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM arrow_scores WHERE shoot_id = ?`, shootID); err != nil {
			return err
		}
		for i, a := range arrows {
			if _, err := tx.Exec(`INSERT INTO arrow_scores (shoot_id, arrow_number, score, is_x) VALUES (?, ?, ?, ?)`,
				shootID, i+1, a.Score, a.IsX); err != nil {
				return fmt.Errorf("insert arrow %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// GetArrows returns a shoot's arrows in the order shot
func (s *Store) GetArrows(shootID string) ([]core.Arrow, error) {
	rows, err := s.db.Query(`SELECT score, is_x FROM arrow_scores
		WHERE shoot_id = ? ORDER BY arrow_number`, shootID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var arrows []core.Arrow
	for rows.Next() {
		var a core.Arrow
		if err := rows.Scan(&a.Score, &a.IsX); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		arrows = append(arrows, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return arrows, nil
}

// DeleteShoot removes a shoot with its arrows and head-to-head rows
func (s *Store) DeleteShoot(shootID string) error {
	return s.withTx("delete_shoot", func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM shoots WHERE shoot_id = ?`, shootID)
		if err != nil {
			return err
		}
		return checkAffected(res, "shoot "+shootID)
	})
}
