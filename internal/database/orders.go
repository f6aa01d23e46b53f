package database

import (
	"context"
	"database/sql"
	"fmt"

	"minis-storefront/internal/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const insertOrderSQL = `
	INSERT INTO orders (
		id, order_id, customer_email, product_name, sku,
		hair_color, skin_color, accessory_color, fabric_color, specific_details,
		shipping_name, shipping_line1, shipping_line2, shipping_city,
		shipping_state, shipping_postal_code, shipping_country,
		timestamp, completed, price
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	ON CONFLICT (id) DO NOTHING
`

// InsertOrders stores orders in one transaction. Rows whose id already
// exists are left as they are; the returned count excludes them.
func (r *OrderRepository) InsertOrders(ctx context.Context, orders []models.Order) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, o := range orders {
		var ship models.ShippingAddress
		if o.ShippingAddress != nil {
			ship = *o.ShippingAddress
		}
		res, err := tx.ExecContext(ctx, insertOrderSQL,
			o.ID, o.OrderID, o.CustomerEmail, o.ProductName, o.SKU,
			o.PaintingOptions.HairColor, o.PaintingOptions.SkinColor,
			o.PaintingOptions.AccessoryColor, o.PaintingOptions.FabricColor,
			o.PaintingOptions.SpecificDetails,
			nullString(ship.Name), nullString(ship.Address.Line1), nullString(ship.Address.Line2),
			nullString(ship.Address.City), nullString(ship.Address.State),
			nullString(ship.Address.PostalCode), nullString(ship.Address.Country),
			o.Timestamp, o.Completed, o.Price,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order %s: %w", o.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit orders: %w", err)
	}
	return inserted, nil
}

// ListOrders returns every order, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, customer_email, product_name, sku,
			hair_color, skin_color, accessory_color, fabric_color, specific_details,
			shipping_name, shipping_line1, shipping_line2, shipping_city,
			shipping_state, shipping_postal_code, shipping_country,
			timestamp, completed, price
		FROM orders
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			o                                      models.Order
			hair, skin, accessory, fabric, details sql.NullString
			name, line1, line2, city, state        sql.NullString
			postal, country                        sql.NullString
		)
		if err := rows.Scan(
			&o.ID, &o.OrderID, &o.CustomerEmail, &o.ProductName, &o.SKU,
			&hair, &skin, &accessory, &fabric, &details,
			&name, &line1, &line2, &city, &state, &postal, &country,
			&o.Timestamp, &o.Completed, &o.Price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		o.PaintingOptions = models.PaintingOptions{
			HairColor:       orNA(hair),
			SkinColor:       orNA(skin),
			AccessoryColor:  orNA(accessory),
			FabricColor:     orNA(fabric),
			SpecificDetails: details.String,
		}
		if o.PaintingOptions.SpecificDetails == "" {
			o.PaintingOptions.SpecificDetails = "None"
		}
		if anyValid(name, line1, line2, city, state, postal, country) {
			o.ShippingAddress = &models.ShippingAddress{
				Name: name.String,
				Address: models.Address{
					Line1:      line1.String,
					Line2:      line2.String,
					City:       city.String,
					State:      state.String,
					PostalCode: postal.String,
					Country:    country.String,
				},
			}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET completed = $1 WHERE id = $2`, completed, id)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return expectRow(res)
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func orNA(s sql.NullString) string {
	if !s.Valid || s.String == "" {
		return "N/A"
	}
	return s.String
}

// anyValid reports whether any column of a stored address is set. The
// address is optional as a whole but each part may be missing on its own.
func anyValid(cols ...sql.NullString) bool {
	for _, c := range cols {
		if c.Valid {
			return true
		}
	}
	return false
}
