package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"minis-storefront/internal/models"
)

const productColumns = `id, name, price, original_price, image, description, sku`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.PremadeProduct, error) {
	var p models.PremadeProduct
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Image, &p.Description, &p.SKU); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]models.PremadeProduct, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM premade_products ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.PremadeProduct{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*models.PremadeProduct, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM premade_products WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepository) GetProductBySKU(ctx context.Context, sku string) (*models.PremadeProduct, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM premade_products WHERE sku = $1`, sku))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", sku, err)
	}
	return p, nil
}

// CreateProduct inserts p. When the SKU already exists nothing is written
// and the existing row is returned with created=false.
func (r *ProductRepository) CreateProduct(ctx context.Context, p models.PremadeProduct) (*models.PremadeProduct, bool, error) {
	created, err := scanProduct(r.db.QueryRowContext(ctx, `
		INSERT INTO premade_products (name, price, original_price, image, description, sku)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sku) DO NOTHING
		RETURNING `+productColumns,
		p.Name, p.Price, p.OriginalPrice, p.Image, p.Description, p.SKU,
	))
	if errors.Is(err, sql.ErrNoRows) {
		existing, err := r.GetProductBySKU(ctx, p.SKU)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create product: %w", err)
	}
	return created, true, nil
}

// UpdateProduct applies the non-nil fields of patch.
func (r *ProductRepository) UpdateProduct(ctx context.Context, id int64, patch models.PremadeProductPatch) (*models.PremadeProduct, error) {
	if patch.Empty() {
		return r.GetProduct(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.OriginalPrice != nil {
		add("original_price", *patch.OriginalPrice)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.SKU != nil {
		add("sku", *patch.SKU)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE premade_products SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: product %d: %v", ErrConflict, id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return p, nil
}

// DeleteProduct removes the row and returns what it held, so the caller
// can clean up the product image.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int64) (*models.PremadeProduct, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`DELETE FROM premade_products WHERE id = $1 RETURNING `+productColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM premade_products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
