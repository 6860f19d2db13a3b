package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Tables holding one JSONB document per record.
const (
	ProductsTable     = "products"
	StoresTable       = "stores"
	TestimonialsTable = "testimonials"
	InquiriesTable    = "inquiries"
	SubscribersTable  = "subscribers"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PgRepository implements Repository on a PostgreSQL table of (id, doc, position) rows.
// Insertion order is preserved through the position sequence.
type PgRepository[T Record[T]] struct {
	db       *pgxpool.Pool
	table    string
	notFound error
}

// NewPgRepository creates a repository backed by the given table.
func NewPgRepository[T Record[T]](dbp *pgxpool.Pool, table string, notFound error) *PgRepository[T] {
	return &PgRepository[T]{
		db:       dbp,
		table:    table,
		notFound: notFound,
	}
}

// List retrieves all records ordered by insertion.
func (p *PgRepository[T]) List(ctx context.Context) ([]T, error) {
	query, args, err := psql.Select("doc").From(p.table).OrderBy("position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.table, err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.table, err)
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindByID retrieves a record by its identifier.
// Returns the not-found error if no record exists with the given ID.
func (p *PgRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	query, args, err := psql.Select("doc").From(p.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return zero, fmt.Errorf("failed to build find query: %w", err)
	}
	var doc []byte
	if err := p.db.QueryRow(ctx, query, args...).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, p.notFound
		}
		return zero, fmt.Errorf("failed to find %s by ID: %w", p.table, err)
	}
	return decode[T](doc)
}

// Create inserts a new record.
// Returns ErrDuplicateID if the ID is already taken.
func (p *PgRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	doc, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", p.table, err)
	}
	query, args, err := psql.Insert(p.table).Columns("id", "doc").Values(rec.GetID(), doc).ToSql()
	if err != nil {
		return zero, fmt.Errorf("failed to build insert query: %w", err)
	}
	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return zero, fmt.Errorf("create %s: %w", rec.GetID(), apperrors.ErrDuplicateID)
		}
		return zero, fmt.Errorf("failed to create %s: %w", p.table, err)
	}
	return rec.Clone(), nil
}

// Mutate locks the row, applies fn and writes the result in one transaction.
func (p *PgRepository[T]) Mutate(ctx context.Context, id string, fn func(*T) error) (T, error) {
	var updated T
	err := pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		query, args, err := psql.Select("doc").From(p.table).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock query: %w", err)
		}
		var doc []byte
		if err := tx.QueryRow(ctx, query, args...).Scan(&doc); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return p.notFound
			}
			return fmt.Errorf("failed to lock %s: %w", p.table, err)
		}
		rec, err := decode[T](doc)
		if err != nil {
			return err
		}
		if err := fn(&rec); err != nil {
			return err
		}
		if rec.GetID() != id {
			return fmt.Errorf("mutate %s: record id cannot change", id)
		}
		doc, err = json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", p.table, err)
		}
		query, args, err = psql.Update(p.table).
			Set("doc", doc).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update %s: %w", p.table, err)
		}
		updated = rec
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes a record by its identifier.
// Returns the not-found error if no record exists with the given ID.
func (p *PgRepository[T]) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(p.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}
	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete %s by ID: %w", p.table, err)
	}
	if tag.RowsAffected() == 0 {
		return p.notFound
	}
	return nil
}

func decode[T any](doc []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(doc, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode document: %w", err)
	}
	return rec, nil
}
