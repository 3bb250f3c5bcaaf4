package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/planillapro/planilla-backend-go/internal/domain/headquarters"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
)

type headquartersRepository struct {
	db *database.DB
}

func NewHeadquartersRepository(db *database.DB) headquarters.HeadquartersRepository {
	return &headquartersRepository{db: db}
}

func (r *headquartersRepository) Create(ctx context.Context, h headquarters.Headquarters) (headquarters.Headquarters, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO headquarters (name, address)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, h.Name, h.Address).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_headquarters_name") {
			return headquarters.Headquarters{}, headquarters.ErrHeadquartersNameExists
		}
		return headquarters.Headquarters{}, fmt.Errorf("failed to create headquarters: %w", err)
	}

	return h, nil
}

func (r *headquartersRepository) GetByID(ctx context.Context, id string) (headquarters.Headquarters, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM headquarters
		WHERE id = $1
	`

	var h headquarters.Headquarters
	err := q.QueryRow(ctx, query, id).Scan(&h.ID, &h.Name, &h.Address, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return headquarters.Headquarters{}, headquarters.ErrHeadquartersNotFound
		}
		return headquarters.Headquarters{}, fmt.Errorf("failed to get headquarters: %w", err)
	}

	return h, nil
}

func (r *headquartersRepository) List(ctx context.Context) ([]headquarters.Headquarters, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM headquarters
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list headquarters: %w", err)
	}
	defer rows.Close()

	var result []headquarters.Headquarters
	for rows.Next() {
		var h headquarters.Headquarters
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan headquarters: %w", err)
		}
		result = append(result, h)
	}

	return result, rows.Err()
}
