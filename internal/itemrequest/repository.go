package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, requesterID string, limit, offset int) ([]*ItemRequest, int, error)

	// ListAnswers returns the items created in answer to the given request.
	ListAnswers(ctx context.Context, requestID string) ([]ItemRef, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.requests").
		Columns("requester_id", "description").
		Values(req.RequesterID, req.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("r.id", "r.requester_id", "u.name", "r.description", "r.created_at").
		From("public.requests r").
		Join("public.users u ON r.requester_id = u.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Description, &req.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("r.id", "r.requester_id", "u.name", "r.description", "r.created_at").
		From("public.requests r").
		Join("public.users u ON r.requester_id = u.id").
		Where(squirrel.Eq{"r.requester_id": requesterID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list own requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list own requests failed: %w", err)
	}
	defer rows.Close()

	var result []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Description, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		result = append(result, &req)
	}

	return result, nil
}

func (r *pgxRepository) ListOthers(ctx context.Context, requesterID string, limit, offset int) ([]*ItemRequest, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("r.id", "r.requester_id", "u.name", "r.description", "r.created_at", "count(*) OVER() as total_count").
		From("public.requests r").
		Join("public.users u ON r.requester_id = u.id").
		Where(squirrel.NotEq{"r.requester_id": requesterID}).
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var result []*ItemRequest
	var total int

	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Description, &req.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan request failed: %w", err)
		}
		result = append(result, &req)
	}

	return result, total, nil
}

func (r *pgxRepository) ListAnswers(ctx context.Context, requestID string) ([]ItemRef, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "name", "owner_id", "available").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list answers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers failed: %w", err)
	}
	defer rows.Close()

	var items []ItemRef
	for rows.Next() {
		var ref ItemRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.OwnerID, &ref.Available); err != nil {
			return nil, fmt.Errorf("scan answer failed: %w", err)
		}
		items = append(items, ref)
	}

	return items, nil
}
