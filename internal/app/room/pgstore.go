/*
Package room contains the room directory.

This file implements Store against PostgreSQL, treating the rooms table as a
document collection: one row per room, the member list embedded as a jsonb array.
Every mutation is a single UPDATE or INSERT statement, which is what gives each
Store call its per-document atomicity.
*/
package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"picnicbox/internal/app/db"
)

// PGStore is the PostgreSQL-backed implementation of Store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore on top of an initialized connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// FindRoomsByCode returns all rooms matching the code. With the primary key on
// code this yields at most one row, but the contract stays slice-shaped so the
// directory owns the uniqueness decision.
func (s *PGStore) FindRoomsByCode(ctx context.Context, code string) ([]Room, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, leader_id, users FROM rooms WHERE code = $1`,
		code,
	)
	if err != nil {
		return nil, fmt.Errorf("query rooms by code: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var rm Room
		var usersJSON []byte

		if err := rows.Scan(&rm.Code, &rm.LeaderID, &usersJSON); err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}

		if err := json.Unmarshal(usersJSON, &rm.Users); err != nil {
			return nil, fmt.Errorf("decode room users: %w", err)
		}

		rooms = append(rooms, rm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}

// InsertRoom persists a new room document. The primary key on code turns a
// concurrent duplicate insert into ErrCodeTaken instead of a silent overwrite.
func (s *PGStore) InsertRoom(ctx context.Context, rm *Room) error {
	usersJSON, err := json.Marshal(rm.Users)
	if err != nil {
		return fmt.Errorf("encode room users: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO rooms (code, leader_id, users) VALUES ($1, $2, $3)`,
		rm.Code, rm.LeaderID, usersJSON,
	)
	if db.IsUniqueViolation(err) {
		return ErrCodeTaken
	}
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}

	return nil
}

// AppendUser appends the user to the end of the room's member array.
func (s *PGStore) AppendUser(ctx context.Context, code string, u User) error {
	userJSON, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE rooms SET users = users || $2::jsonb WHERE code = $1`,
		code, userJSON,
	)
	if err != nil {
		return fmt.Errorf("append user: %w", err)
	}

	return nil
}

// RenameUser rewrites the member array with the matching user's name replaced.
// The WITH ORDINALITY ordering keeps the stored join order intact.
func (s *PGStore) RenameUser(ctx context.Context, code, userID, name string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE rooms
		 SET users = (
		     SELECT COALESCE(jsonb_agg(
		         CASE WHEN u->>'id' = $2
		              THEN jsonb_set(u, '{name}', to_jsonb($3::text))
		              ELSE u
		         END ORDER BY ord), '[]'::jsonb)
		     FROM jsonb_array_elements(users) WITH ORDINALITY AS t(u, ord)
		 )
		 WHERE code = $1`,
		code, userID, name,
	)
	if err != nil {
		return fmt.Errorf("rename user: %w", err)
	}

	return nil
}

// SetConnection stores connID on the matching member. Rooms or users that do not
// exist leave zero rows or the array unchanged, satisfying the silent no-op
// contract.
func (s *PGStore) SetConnection(ctx context.Context, code, userID, connID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE rooms
		 SET users = (
		     SELECT COALESCE(jsonb_agg(
		         CASE WHEN u->>'id' = $2
		              THEN jsonb_set(u, '{connectionId}', to_jsonb($3::text))
		              ELSE u
		         END ORDER BY ord), '[]'::jsonb)
		     FROM jsonb_array_elements(users) WITH ORDINALITY AS t(u, ord)
		 )
		 WHERE code = $1`,
		code, userID, connID,
	)
	if err != nil {
		return fmt.Errorf("set connection: %w", err)
	}

	return nil
}

// ClearConnection removes connID from whichever member holds it and reports the
// owning room's code. pgx.ErrNoRows means nothing held the connection.
func (s *PGStore) ClearConnection(ctx context.Context, connID string) (string, error) {
	var code string

	err := s.pool.QueryRow(ctx,
		`UPDATE rooms
		 SET users = (
		     SELECT COALESCE(jsonb_agg(
		         CASE WHEN u->>'connectionId' = $1
		              THEN u - 'connectionId'
		              ELSE u
		         END ORDER BY ord), '[]'::jsonb)
		     FROM jsonb_array_elements(users) WITH ORDINALITY AS t(u, ord)
		 )
		 WHERE EXISTS (
		     SELECT 1 FROM jsonb_array_elements(users) AS e
		     WHERE e->>'connectionId' = $1
		 )
		 RETURNING code`,
		connID,
	).Scan(&code)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("clear connection: %w", err)
	}

	return code, nil
}
