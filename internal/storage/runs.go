package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// RunRecord is the outcome of one headless simulation run. Seed, Ticks and
// Pilot are enough to replay it; Hash checks that the replay matched.
type RunRecord struct {
	ID        int64
	GameID    string
	Seed      int64
	Ticks     uint64
	Score     int
	Hash      uint64
	Reason    string // empty if the run was still going when it stopped
	Pilot     string // "auto" or the script path
	CreatedAt time.Time
}

const runColumns = "id, game_id, seed, ticks, score, hash, reason, pilot, created_at"

// SaveRun records a headless run. The hash is stored as hex text since
// SQLite integers are signed.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	return s.insert("run",
		`INSERT INTO runs (game_id, seed, ticks, score, hash, reason, pilot)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, int64(r.Ticks), r.Score, strconv.FormatUint(r.Hash, 16), r.Reason, r.Pilot,
	)
}

// RecentRuns returns up to limit runs of a game, newest first. A
// non-positive limit means 10.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, limit,
	)
}

// LastRun returns the newest run with the same game, seed, tick count and
// pilot, or nil when there is none.
func (s *Store) LastRun(gameID string, seed int64, ticks uint64, pilot string) (*RunRecord, error) {
	runs, err := s.queryRuns(
		"SELECT "+runColumns+` FROM runs
		 WHERE game_id = ? AND seed = ? AND ticks = ? AND pilot = ?
		 ORDER BY id DESC LIMIT 1`,
		gameID, seed, int64(ticks), pilot,
	)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var (
		r     RunRecord
		ticks int64
		hash  string
		at    any
	)
	if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &ticks, &r.Score, &hash, &r.Reason, &r.Pilot, &at); err != nil {
		return r, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return r, fmt.Errorf("storage: corrupt run hash %q: %w", hash, err)
	}
	r.Ticks = uint64(ticks)
	r.Hash = h
	r.CreatedAt = parseTime(at)
	return r, nil
}
