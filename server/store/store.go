package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"holdem-tracker/server/engine"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// SaveHand appends one completed hand. The archive is insert-only: a second
// save of the same id fails on the primary key.
func (db *DB) SaveHand(ctx context.Context, h *engine.Hand) error {
	if !h.Completed {
		return fmt.Errorf("store: refusing incomplete hand %s", h.ID)
	}
	players, err := json.Marshal(h.Players)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(h.Actions)
	if err != nil {
		return err
	}
	winners, err := json.Marshal(h.WinnerPositions)
	if err != nil {
		return err
	}
	winnings, err := json.Marshal(h.Winnings)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
        INSERT INTO hands(
            id, players_data, actions_data, board_cards, pot_size,
            current_round, is_completed, winner_positions, winnings, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, h.ID, players, actions, h.Board, h.Pot,
		string(h.Round), h.Completed, winners, winnings, h.CreatedAt)
	return err
}

func (db *DB) GetHand(ctx context.Context, id string) (*engine.Hand, error) {
	row := db.QueryRow(ctx, `
        SELECT id, players_data, actions_data, board_cards, pot_size,
               current_round, is_completed, winner_positions, winnings, created_at
          FROM hands
         WHERE id = $1
    `, id)
	h, err := scanHand(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", engine.ErrHandNotFound, id)
		}
		return nil, err
	}
	return h, nil
}

func (db *DB) ListHands(ctx context.Context, limit int) ([]*engine.Hand, error) {
	rows, err := db.Query(ctx, `
        SELECT id, players_data, actions_data, board_cards, pot_size,
               current_round, is_completed, winner_positions, winnings, created_at
          FROM hands
         ORDER BY created_at DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*engine.Hand
	for rows.Next() {
		h, err := scanHand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHand(row pgx.Row) (*engine.Hand, error) {
	var (
		h        engine.Hand
		round    string
		players  []byte
		actions  []byte
		winners  []byte
		winnings []byte
		created  time.Time
	)
	if err := row.Scan(&h.ID, &players, &actions, &h.Board, &h.Pot,
		&round, &h.Completed, &winners, &winnings, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(players, &h.Players); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actions, &h.Actions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(winners, &h.WinnerPositions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(winnings, &h.Winnings); err != nil {
		return nil, err
	}
	h.Round = engine.Round(round)
	h.CreatedAt = created
	return &h, nil
}
