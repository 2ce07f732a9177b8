package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/models"
)

const itemColumns = `id, uuid, calendar, year, season, month, day, kind, fixed_date, all_day,
	title, note, status, order_in_week, order_in_period, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.Item, error) {
	var (
		it                    models.Item
		year, season, month   sql.NullInt64
		title, note           sql.NullString
		weekKey, periodKey    sql.NullString
		calendarID, day, kind int64
		status                int64
	)
	err := s.Scan(&it.ID, &it.UUID, &calendarID, &year, &season, &month, &day, &kind,
		&it.FixedDate, &it.AllDay, &title, &note, &status, &weekKey, &periodKey,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.Calendar = calendar.Variant(calendarID)
	it.Day = calendar.Day(day)
	it.Kind = models.Kind(kind)
	it.Status = models.Status(status)
	it.Year = nullInt(year)
	it.Season = nullInt(season)
	it.Month = nullInt(month)
	it.Title = nullString(title)
	it.Note = nullString(note)
	it.OrderInWeek = nullString(weekKey)
	it.OrderInPeriod = nullString(periodKey)
	return &it, nil
}

func (db *DB) queryItems(ctx context.Context, op, query string, args ...any) ([]models.Item, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("store: %s: scan: %w", op, err)
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// ItemsBetweenDays returns the non-objective items whose day lies in
// [start, end], in week order. Items without a key sort last.
func (db *DB) ItemsBetweenDays(ctx context.Context, start, end calendar.Day) ([]models.Item, error) {
	return db.queryItems(ctx, "items between days", `
		SELECT `+itemColumns+`
		FROM items
		WHERE day >= ? AND day <= ? AND year IS NULL
		ORDER BY order_in_week IS NULL, order_in_week, id`,
		int64(start), int64(end))
}

// ItemsInYear returns the objectives of year in calendar v, in period order.
func (db *DB) ItemsInYear(ctx context.Context, v calendar.Variant, year int) ([]models.Item, error) {
	return db.queryItems(ctx, "items in year", `
		SELECT `+itemColumns+`
		FROM items
		WHERE calendar = ? AND year = ?
		ORDER BY order_in_period IS NULL, order_in_period, id`,
		int(v), year)
}

// GetItem returns the item with id, or apperr.ErrNotFound.
func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: item %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get item %d: %w", id, err)
	}
	return it, nil
}

// CreateItem inserts a new item with a fresh uuid and returns it.
func (db *DB) CreateItem(ctx context.Context, n models.NewItem) (*models.Item, error) {
	if !n.Kind.Valid() {
		return nil, fmt.Errorf("store: create item: kind %d: %w", n.Kind, apperr.ErrInvalidInput)
	}
	it := n.Item()
	it.UUID = uuid.New().String()
	now := time.Now().UTC()
	it.CreatedAt, it.UpdatedAt = now, now

	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO items (uuid, calendar, year, season, month, day, kind, fixed_date, all_day,
			title, note, status, order_in_week, order_in_period, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.UUID, int(it.Calendar), it.Year, it.Season, it.Month, int64(it.Day), int(it.Kind),
		it.FixedDate, it.AllDay, it.Title, it.Note, int(it.Status), it.OrderInWeek, it.OrderInPeriod,
		it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create item: %w", err)
	}
	if it.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("store: create item: last id: %w", err)
	}
	return &it, nil
}

const updateSQL = `
	UPDATE items SET
		calendar = ?, year = ?, season = ?, month = ?, day = ?, kind = ?,
		fixed_date = ?, all_day = ?, title = ?, note = ?, status = ?,
		order_in_week = ?, order_in_period = ?, updated_at = ?
	WHERE id = ?`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateOne(ctx context.Context, ex execer, it *models.Item) error {
	it.UpdatedAt = time.Now().UTC()
	res, err := ex.ExecContext(ctx, updateSQL,
		int(it.Calendar), it.Year, it.Season, it.Month, int64(it.Day), int(it.Kind),
		it.FixedDate, it.AllDay, it.Title, it.Note, int(it.Status),
		it.OrderInWeek, it.OrderInPeriod, it.UpdatedAt, it.ID)
	if err != nil {
		return fmt.Errorf("store: update item %d: %w", it.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: update item %d: %w", it.ID, apperr.ErrNotFound)
	}
	return nil
}

// UpdateItem writes every mutable field of it.
func (db *DB) UpdateItem(ctx context.Context, it *models.Item) error {
	return updateOne(ctx, db.conn, it)
}

// UpdateItems writes all items in one transaction; either all or none are stored.
func (db *DB) UpdateItems(ctx context.Context, items []models.Item) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for i := range items {
			if err := updateOne(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteItem removes the item with id.
func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete item %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: delete item %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
