// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/telaffuz/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for analysis sessions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			source TEXT NOT NULL,
			audio_path TEXT NOT NULL,
			target TEXT NOT NULL,
			recognized TEXT NOT NULL,
			target_words INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			overall_score REAL NOT NULL,
			no_speech INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_words (
			session_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			target TEXT NOT NULL,
			recognized TEXT NOT NULL,
			score REAL NOT NULL,
			correct INTEGER NOT NULL,
			error_kind TEXT NOT NULL,
			PRIMARY KEY (session_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS session_phoneme_stats (
			session_id INTEGER NOT NULL,
			vowel TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			band_score_sum REAL NOT NULL,
			band_score_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, vowel)
		);`,
		`CREATE TABLE IF NOT EXISTS session_confusions (
			session_id INTEGER NOT NULL,
			target TEXT NOT NULL,
			recognized TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (session_id, target, recognized)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_phoneme_stats_vowel ON session_phoneme_stats(vowel);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores an analyzed utterance with its words, vowel stats and
// confusions in one transaction.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, words []model.WordStats, phonemes []model.PhonemeStats, confusions []model.ConfusionStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, source, audio_path, target, recognized, target_words, correct_words, overall_score, no_speech, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Source,
		stats.AudioPath,
		stats.Target,
		stats.Recognized,
		stats.TargetWords,
		stats.CorrectWords,
		stats.OverallScore,
		boolInt(stats.NoSpeech),
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, w := range words {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_words (session_id, position, target, recognized, score, correct, error_kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, w.Position, w.Target, w.Recognized, w.Score, boolInt(w.Correct), w.ErrorKind); err != nil {
			return 0, err
		}
	}
	for _, ps := range phonemes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_phoneme_stats (session_id, vowel, correct, incorrect, band_score_sum, band_score_count)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, ps.Vowel, ps.Correct, ps.Incorrect, ps.BandScoreSum, ps.BandScoreCount); err != nil {
			return 0, err
		}
	}
	for _, c := range confusions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_confusions (session_id, target, recognized, count)
			 VALUES (?, ?, ?, ?)`,
			id, c.Target, c.Recognized, c.Count); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWeakPhonemes aggregates vowel stats over the most recent sessions.
func (s *Store) GetWeakPhonemes(ctx context.Context, window int) ([]model.PhonemeAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ps.vowel, SUM(ps.correct), SUM(ps.incorrect),
		SUM(ps.band_score_sum), SUM(ps.band_score_count)
	FROM session_phoneme_stats ps
	JOIN recent_sessions r ON r.id = ps.session_id
	GROUP BY ps.vowel`

	rows, err := s.db.QueryContext(ctx, query, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanPhonemeAggregates(rows)
}

// ListSessions returns session aggregates filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, overall_score, target_words, correct_words, no_speech
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		var noSpeech int
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.OverallScore, &agg.TargetWords, &agg.CorrectWords, &noSpeech); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.NoSpeech = noSpeech != 0
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListPhonemeAggregatesForSessions aggregates per-vowel stats across sessions.
func (s *Store) ListPhonemeAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.PhonemeAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders, args := idArgs(sessionIDs)
	query := fmt.Sprintf(`SELECT vowel, SUM(correct), SUM(incorrect),
		SUM(band_score_sum), SUM(band_score_count)
		FROM session_phoneme_stats
		WHERE session_id IN (%s)
		GROUP BY vowel`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanPhonemeAggregates(rows)
}

// ListConfusions sums vowel confusions across sessions, most frequent first.
func (s *Store) ListConfusions(ctx context.Context, sessionIDs []int64) ([]model.ConfusionStats, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders, args := idArgs(sessionIDs)
	query := fmt.Sprintf(`SELECT target, recognized, SUM(count) AS total
		FROM session_confusions
		WHERE session_id IN (%s)
		GROUP BY target, recognized
		ORDER BY total DESC, target ASC, recognized ASC`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ConfusionStats
	for rows.Next() {
		var c model.ConfusionStats
		if err := rows.Scan(&c.Target, &c.Recognized, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListWords returns the stored word results of one session in order.
func (s *Store) ListWords(ctx context.Context, sessionID int64) ([]model.WordStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, target, recognized, score, correct, error_kind
		 FROM session_words
		 WHERE session_id = ?
		 ORDER BY position ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordStats
	for rows.Next() {
		var w model.WordStats
		var correct int
		if err := rows.Scan(&w.Position, &w.Target, &w.Recognized, &w.Score, &correct, &w.ErrorKind); err != nil {
			return nil, err
		}
		w.Correct = correct != 0
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanPhonemeAggregates(rows *sql.Rows) ([]model.PhonemeAggregate, error) {
	var result []model.PhonemeAggregate
	for rows.Next() {
		var agg model.PhonemeAggregate
		if err := rows.Scan(&agg.Vowel, &agg.Correct, &agg.Incorrect, &agg.BandScoreSum, &agg.BandScoreCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func idArgs(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
