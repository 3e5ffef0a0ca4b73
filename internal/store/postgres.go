// Package store provides PostgreSQL persistence for conversation turns.
//
// Every completed voice turn (utterance in, reply out) is archived in the
// conversation_turns table with a GIN full-text search index over the
// transcribed text. Persistence is best-effort: the server logs and drops
// write failures rather than failing the voice turn.
//
// All operations are safe for concurrent use; the store holds a single
// [pgxpool.Pool].
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Turn is one archived voice exchange.
type Turn struct {
	// SessionID identifies the conversation the turn belongs to.
	SessionID string

	// Mode is the conversation mode the session was in when the utterance
	// arrived (idle, active, aagya, hasya, yudha, gandharva, khoj).
	Mode string

	// UserText is the transcribed utterance.
	UserText string

	// ReplyText is the assistant's spoken reply.
	ReplyText string

	// Voice is the TTS voice name that spoke the reply. Empty when
	// synthesis failed or the turn produced no audio.
	Voice string

	// Timestamp is when the turn completed.
	Timestamp time.Time

	// Duration is the end-to-end processing time of the turn.
	Duration time.Duration
}

// SearchOpts filters [Store.Search] results.
type SearchOpts struct {
	// SessionID restricts results to one session. Empty means all sessions.
	SessionID string

	// Mode restricts results to one conversation mode.
	Mode string

	// After and Before bound the timestamp range. Zero values are ignored.
	After  time.Time
	Before time.Time

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

const ddlConversationTurns = `
CREATE TABLE IF NOT EXISTS conversation_turns (
    id          BIGSERIAL    PRIMARY KEY,
    session_id  TEXT         NOT NULL,
    mode        TEXT         NOT NULL,
    user_text   TEXT         NOT NULL,
    reply_text  TEXT         NOT NULL,
    voice       TEXT         NOT NULL DEFAULT '',
    timestamp   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    duration_ns BIGINT       NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_conversation_turns_session
    ON conversation_turns (session_id, timestamp);

CREATE INDEX IF NOT EXISTS idx_conversation_turns_mode
    ON conversation_turns (mode);

CREATE INDEX IF NOT EXISTS idx_conversation_turns_fts
    ON conversation_turns USING GIN (to_tsvector('english', user_text || ' ' || reply_text));
`

// Migrate creates or ensures the conversation_turns table and its indexes
// exist. It is idempotent and safe to call on every application start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, ddlConversationTurns); err != nil {
		return fmt.Errorf("store migrate: %w", err)
	}
	return nil
}

// Store archives conversation turns in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore establishes a connection pool to the PostgreSQL database at dsn
// and runs [Migrate] to ensure the schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{pool: pool}, nil
}

// SaveTurn appends one turn to the archive.
func (s *Store) SaveTurn(ctx context.Context, t Turn) error {
	const q = `
		INSERT INTO conversation_turns
		    (session_id, mode, user_text, reply_text, voice, timestamp, duration_ns)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.pool.Exec(ctx, q,
		t.SessionID,
		t.Mode,
		t.UserText,
		t.ReplyText,
		t.Voice,
		ts,
		t.Duration.Nanoseconds(),
	)
	if err != nil {
		return fmt.Errorf("store: save turn: %w", err)
	}
	return nil
}

// RecentTurns returns the last limit turns for sessionID, ordered
// chronologically (oldest first).
func (s *Store) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	const q = `
		SELECT session_id, mode, user_text, reply_text, voice, timestamp, duration_ns
		FROM (
		    SELECT session_id, mode, user_text, reply_text, voice, timestamp, duration_ns
		    FROM   conversation_turns
		    WHERE  session_id = $1
		    ORDER  BY timestamp DESC
		    LIMIT  $2
		) recent
		ORDER BY timestamp`

	rows, err := s.pool.Query(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent turns: %w", err)
	}
	return collectTurns(rows)
}

// Search performs a PostgreSQL full-text search over user and reply text,
// applying the optional filters from opts. The query is passed through
// plainto_tsquery so no special operator syntax is required.
func (s *Store) Search(ctx context.Context, query string, opts SearchOpts) ([]Turn, error) {
	args := []any{query} // $1 = FTS query string
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conditions := []string{
		"to_tsvector('english', user_text || ' ' || reply_text) @@ plainto_tsquery('english', $1)",
	}
	if opts.SessionID != "" {
		conditions = append(conditions, "session_id = "+next(opts.SessionID))
	}
	if opts.Mode != "" {
		conditions = append(conditions, "mode = "+next(opts.Mode))
	}
	if !opts.After.IsZero() {
		conditions = append(conditions, "timestamp > "+next(opts.After))
	}
	if !opts.Before.IsZero() {
		conditions = append(conditions, "timestamp < "+next(opts.Before))
	}

	q := "SELECT session_id, mode, user_text, reply_text, voice, timestamp, duration_ns\n" +
		"FROM   conversation_turns\n" +
		"WHERE  " + strings.Join(conditions, "\n  AND  ") + "\n" +
		"ORDER  BY timestamp"

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	return collectTurns(rows)
}

// Ping verifies the database connection. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// collectTurns scans pgx rows into a slice of Turn values.
func collectTurns(rows pgx.Rows) ([]Turn, error) {
	turns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Turn, error) {
		var (
			t          Turn
			durationNS int64
		)
		if err := row.Scan(
			&t.SessionID,
			&t.Mode,
			&t.UserText,
			&t.ReplyText,
			&t.Voice,
			&t.Timestamp,
			&durationNS,
		); err != nil {
			return Turn{}, err
		}
		t.Duration = time.Duration(durationNS)
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: scan rows: %w", err)
	}
	if turns == nil {
		turns = []Turn{}
	}
	return turns, nil
}
