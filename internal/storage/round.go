package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	"archery/internal/round"
)

// SeedRounds inserts round definitions, leaving rounds that already exist untouched
func (s *Store) SeedRounds(defs []round.Definition) (int, error) {
	added := 0
	err := s.withTx("seed_rounds", func(tx *sql.Tx) error {
		for _, d := range defs {
			res, err := tx.Exec(`INSERT OR IGNORE INTO rounds (
				round_id, name, display_name, is_outdoor, is_metric
			) VALUES (?, ?, ?, ?, ?)`,
				d.Round.ID, d.Round.Name, d.Round.DisplayName, d.Round.IsOutdoor, d.Round.IsMetric,
			)
			if err != nil {
				return fmt.Errorf("insert round %s: %w", d.Round.Name, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				continue
			}
			added++

			for _, st := range d.SubTypes {
				if _, err := tx.Exec(`INSERT INTO round_sub_types (round_id, sub_type_id, name) VALUES (?, ?, ?)`,
					d.Round.ID, st.ID, st.Name); err != nil {
					return fmt.Errorf("insert sub type %s: %w", st.Name, err)
				}
			}
			for _, dist := range d.Distances {
				if _, err := tx.Exec(`INSERT INTO round_distances (
					round_id, distance_number, sub_type_id, distance
				) VALUES (?, ?, ?, ?)`,
					d.Round.ID, dist.DistanceNumber, dist.SubTypeID, dist.Distance); err != nil {
					return fmt.Errorf("insert distance for %s: %w", d.Round.Name, err)
				}
			}
			for _, ac := range d.ArrowCounts {
				if _, err := tx.Exec(`INSERT INTO round_arrow_counts (
					round_id, distance_number, face_size_cm, arrow_count
				) VALUES (?, ?, ?, ?)`,
					d.Round.ID, ac.DistanceNumber, ac.FaceSizeCm, ac.ArrowCount); err != nil {
					return fmt.Errorf("insert arrow count for %s: %w", d.Round.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Rounds seeded", slog.Int("added", added), slog.Int("offered", len(defs)))
	return added, nil
}

// ListRounds returns every stored round ordered by id
func (s *Store) ListRounds() ([]round.Round, error) {
	rows, err := s.db.Query(`SELECT round_id, name, display_name, is_outdoor, is_metric
		FROM rounds ORDER BY round_id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []round.Round
	for rows.Next() {
		var r round.Round
		if err := rows.Scan(&r.ID, &r.Name, &r.DisplayName, &r.IsOutdoor, &r.IsMetric); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return out, nil
}

// GetRound loads a round and all of its geometry by name
func (s *Store) GetRound(name string) (round.Definition, error) {
	var d round.Definition
	err := s.db.QueryRow(`SELECT round_id, name, display_name, is_outdoor, is_metric
		FROM rounds WHERE name = ?`, name).
		Scan(&d.Round.ID, &d.Round.Name, &d.Round.DisplayName, &d.Round.IsOutdoor, &d.Round.IsMetric)
	if err != nil {
		return d, notFound(err, "round "+name)
	}
	return s.loadGeometry(d)
}

// GetRoundByID is GetRound keyed by id, as stored on shoots
func (s *Store) GetRoundByID(id int) (round.Definition, error) {
	var d round.Definition
	err := s.db.QueryRow(`SELECT round_id, name, display_name, is_outdoor, is_metric
		FROM rounds WHERE round_id = ?`, id).
		Scan(&d.Round.ID, &d.Round.Name, &d.Round.DisplayName, &d.Round.IsOutdoor, &d.Round.IsMetric)
	if err != nil {
		return d, notFound(err, fmt.Sprintf("round %d", id))
	}
	return s.loadGeometry(d)
}

func (s *Store) loadGeometry(d round.Definition) (round.Definition, error) {
	id := d.Round.ID

	rows, err := s.db.Query(`SELECT sub_type_id, name FROM round_sub_types
		WHERE round_id = ? ORDER BY sub_type_id`, id)
	if err != nil {
		return d, fmt.Errorf("query failed: %w", err)
	}
	for rows.Next() {
		st := round.SubType{RoundID: id}
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			rows.Close()
			return d, fmt.Errorf("scan failed: %w", err)
		}
		d.SubTypes = append(d.SubTypes, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("rows iteration failed: %w", err)
	}

	rows, err = s.db.Query(`SELECT distance_number, sub_type_id, distance FROM round_distances
		WHERE round_id = ? ORDER BY sub_type_id, distance_number`, id)
	if err != nil {
		return d, fmt.Errorf("query failed: %w", err)
	}
	for rows.Next() {
		dist := round.Distance{RoundID: id}
		if err := rows.Scan(&dist.DistanceNumber, &dist.SubTypeID, &dist.Distance); err != nil {
			rows.Close()
			return d, fmt.Errorf("scan failed: %w", err)
		}
		d.Distances = append(d.Distances, dist)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("rows iteration failed: %w", err)
	}

	rows, err = s.db.Query(`SELECT distance_number, face_size_cm, arrow_count FROM round_arrow_counts
		WHERE round_id = ? ORDER BY distance_number`, id)
	if err != nil {
		return d, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ac := round.ArrowCount{RoundID: id}
		if err := rows.Scan(&ac.DistanceNumber, &ac.FaceSizeCm, &ac.ArrowCount); err != nil {
			return d, fmt.Errorf("scan failed: %w", err)
		}
		d.ArrowCounts = append(d.ArrowCounts, ac)
	}
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("rows iteration failed: %w", err)
	}
	return d, nil
}
