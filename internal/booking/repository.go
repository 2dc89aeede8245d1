package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists the booking and claims its slot keys. It returns a
	// *ConflictError if any requested key is already claimed, in which case
	// nothing is written. On success the store-assigned ID and BookedAt are
	// filled in on b.
	Create(ctx context.Context, b *Booking) error
	List(ctx context.Context) ([]*Booking, error)
	Delete(ctx context.Context, id string) error

	// TakenSlots returns every slot key currently claimed by any booking.
	TakenSlots(ctx context.Context) ([]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Lock any already-claimed rows among the requested keys so a concurrent
	// delete cannot free them mid-check.
	query, args, err := psql.Select("slot_key").
		From("public.booking_slots").
		Where(squirrel.Eq{"slot_key": b.Slots}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build claimed slots query failed: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query claimed slots failed: %w", err)
	}

	claimed := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return fmt.Errorf("scan claimed slot failed: %w", err)
		}
		claimed[key] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read claimed slots failed: %w", err)
	}

	if len(claimed) > 0 {
		conflicts := make([]string, 0, len(claimed))
		for _, key := range b.Slots {
			if _, ok := claimed[key]; ok {
				conflicts = append(conflicts, key)
			}
		}
		return &ConflictError{Conflicts: conflicts}
	}

	query, args, err = psql.Insert("public.bookings").
		Columns("name", "age", "phone").
		Values(b.Name, b.Age, b.Phone).
		Suffix("RETURNING id, booked_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.BookedAt); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	slotInsert := psql.Insert("public.booking_slots").
		Columns("booking_id", "slot_key", "position")
	for i, key := range b.Slots {
		slotInsert = slotInsert.Values(b.ID, key, i)
	}

	query, args, err = slotInsert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert slots query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		// FOR UPDATE only locks rows that exist; two transactions inserting
		// the same brand-new key race past the check and one of them hits
		// the unique index instead.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return &ConflictError{Conflicts: b.Slots}
		}
		return fmt.Errorf("insert booking slots failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.name", "b.age", "b.phone", "b.booked_at", "bs.slot_key",
	).
		From("public.bookings b").
		Join("public.booking_slots bs ON bs.booking_id = b.id").
		OrderBy("b.booked_at DESC", "b.id", "bs.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	index := make(map[string]*Booking)

	for rows.Next() {
		var (
			b       Booking
			slotKey string
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Age, &b.Phone, &b.BookedAt, &slotKey); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}

		existing, ok := index[b.ID]
		if !ok {
			existing = &b
			index[b.ID] = existing
			bookings = append(bookings, existing)
		}
		existing.Slots = append(existing.Slots, slotKey)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bookings failed: %w", err)
	}

	return bookings, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) TakenSlots(ctx context.Context) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("slot_key").
		From("public.booking_slots").
		OrderBy("slot_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build taken slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query taken slots failed: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan taken slot failed: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read taken slots failed: %w", err)
	}

	return keys, nil
}
