package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

var ErrNotFound = errors.New("storage: not found")

var _ port.CatalogProvider = (*CatalogRepository)(nil)

type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

func (r CatalogRepository) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT name, description, price, image_url, position
		FROM products
		ORDER BY position ASC, name ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r CatalogRepository) ReadProduct(
	ctx context.Context, name string,
) (domain.Product, error) {
	const op = "CatalogRepository.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT name, description, price, image_url, position
		FROM products
		WHERE name = $1;`

	var p domain.Product
	err := r.sqldb.QueryRowContext(ctx, query, name).Scan(
		&p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
