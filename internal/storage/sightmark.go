package storage

import (
	"database/sql"
	"fmt"

	"archery/internal/sightmark"
)

func (s *Store) AddSightMark(m sightmark.SightMark) error {
	return s.withTx("add_sight_mark", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO sight_marks (
			sight_mark_id, distance, is_metric, value, note, date_set_utc, is_marked, is_archived
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Distance, m.IsMetric, m.Value, m.Note, m.DateSet.UTC(), m.IsMarked, m.IsArchived,
		)
		if err != nil {
			return fmt.Errorf("insert sight mark: %w", err)
		}
		return nil
	})
}

// ListSightMarks returns marks ordered by range
func (s *Store) ListSightMarks(includeArchived bool) ([]sightmark.SightMark, error) {
	query := `SELECT sight_mark_id, distance, is_metric, value, note, date_set_utc, is_marked, is_archived
		FROM sight_marks`
	if !includeArchived {
		query += " WHERE is_archived = 0"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []sightmark.SightMark
	for rows.Next() {
		var m sightmark.SightMark
		if err := rows.Scan(&m.ID, &m.Distance, &m.IsMetric, &m.Value, &m.Note,
			&m.DateSet, &m.IsMarked, &m.IsArchived); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	sightmark.Sort(out)
	return out, nil
}

func (s *Store) ArchiveSightMark(id string) error {
	return s.withTx("archive_sight_mark", func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE sight_marks SET is_archived = 1 WHERE sight_mark_id = ?`, id)
		if err != nil {
			return err
		}
		return checkAffected(res, "sight mark "+id)
	})
}
