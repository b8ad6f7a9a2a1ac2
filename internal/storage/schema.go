package storage

import "time"

// ShootRecord represents a row in the shoots table
type ShootRecord struct {
	ShootID        string    `db:"shoot_id"`
	RoundID        int       `db:"round_id"`
	SubTypeID      int       `db:"sub_type_id"`
	Face           string    `db:"face"`
	InnerTenArcher bool      `db:"inner_ten_archer"`
	Use2023        bool      `db:"use_2023"`
	IsImperial     bool      `db:"is_imperial"` // scores converted to five-zone values
	Note           string    `db:"note"`
	ShotAtUTC      time.Time `db:"shot_at_utc"`
}

// HeadToHeadRecord represents a row in the head_to_heads table
type HeadToHeadRecord struct {
	ShootID          string `db:"shoot_id"`
	TeamSize         int    `db:"team_size"`
	IsSetPoints      bool   `db:"is_set_points"`
	IsStandardFormat bool   `db:"is_standard_format"`
	EndSize          int    `db:"end_size"`
}

// MatchRecord represents a row in the h2h_matches table
type MatchRecord struct {
	ShootID       string `db:"shoot_id"`
	MatchNumber   int    `db:"match_number"`
	Opponent      string `db:"opponent"`
	OpponentRank  int    `db:"opponent_rank"`
	IsShootOffWin bool   `db:"is_shoot_off_win"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS rounds (
	round_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL,
	is_outdoor INTEGER NOT NULL,
	is_metric INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS round_sub_types (
	round_id INTEGER NOT NULL,
	sub_type_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (round_id, sub_type_id),
	FOREIGN KEY (round_id) REFERENCES rounds(round_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS round_distances (
	round_id INTEGER NOT NULL,
	distance_number INTEGER NOT NULL,
	sub_type_id INTEGER NOT NULL,
	distance INTEGER NOT NULL CHECK(distance > 0),
	PRIMARY KEY (round_id, distance_number, sub_type_id),
	FOREIGN KEY (round_id, sub_type_id) REFERENCES round_sub_types(round_id, sub_type_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS round_arrow_counts (
	round_id INTEGER NOT NULL,
	distance_number INTEGER NOT NULL,
	face_size_cm REAL NOT NULL CHECK(face_size_cm > 0),
	arrow_count INTEGER NOT NULL CHECK(arrow_count > 0),
	PRIMARY KEY (round_id, distance_number),
	FOREIGN KEY (round_id) REFERENCES rounds(round_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS shoots (
	shoot_id TEXT PRIMARY KEY,
	round_id INTEGER NOT NULL,
	sub_type_id INTEGER NOT NULL,
	face TEXT NOT NULL DEFAULT 'full',
	inner_ten_archer INTEGER NOT NULL DEFAULT 0,
	use_2023 INTEGER NOT NULL DEFAULT 0,
	is_imperial INTEGER NOT NULL DEFAULT 0,
	note TEXT NOT NULL DEFAULT '',
	shot_at_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (round_id, sub_type_id) REFERENCES round_sub_types(round_id, sub_type_id)
);

CREATE TABLE IF NOT EXISTS arrow_scores (
	shoot_id TEXT NOT NULL,
	arrow_number INTEGER NOT NULL,
	score INTEGER NOT NULL CHECK(score BETWEEN 0 AND 10),
	is_x INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (shoot_id, arrow_number),
	FOREIGN KEY (shoot_id) REFERENCES shoots(shoot_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS head_to_heads (
	shoot_id TEXT PRIMARY KEY,
	team_size INTEGER NOT NULL CHECK(team_size > 0),
	is_set_points INTEGER NOT NULL,
	is_standard_format INTEGER NOT NULL,
	end_size INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (shoot_id) REFERENCES shoots(shoot_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS h2h_matches (
	shoot_id TEXT NOT NULL,
	match_number INTEGER NOT NULL,
	opponent TEXT NOT NULL DEFAULT '',
	opponent_rank INTEGER NOT NULL DEFAULT 0,
	is_shoot_off_win INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (shoot_id, match_number),
	FOREIGN KEY (shoot_id) REFERENCES head_to_heads(shoot_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS h2h_details (
	shoot_id TEXT NOT NULL,
	match_number INTEGER NOT NULL,
	set_number INTEGER NOT NULL,
	type INTEGER NOT NULL,
	arrow_number INTEGER NOT NULL,
	is_total INTEGER NOT NULL DEFAULT 0,
	score INTEGER NOT NULL,
	is_x INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (shoot_id, match_number, set_number, type, arrow_number),
	FOREIGN KEY (shoot_id, match_number) REFERENCES h2h_matches(shoot_id, match_number) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS sight_marks (
	sight_mark_id TEXT PRIMARY KEY,
	distance INTEGER NOT NULL CHECK(distance > 0),
	is_metric INTEGER NOT NULL,
	value REAL NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	date_set_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	is_marked INTEGER NOT NULL DEFAULT 0,
	is_archived INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_shoots_round_id ON shoots(round_id);
CREATE INDEX IF NOT EXISTS idx_h2h_details_match ON h2h_details(shoot_id, match_number);
`
