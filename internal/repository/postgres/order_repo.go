package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventuras/internal/domain"
)

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) domain.OrderRepository {
	return &orderRepository{
		DB: db,
	}
}

const orderColumns = `id, registration_id, organization_id, status, customer_name, customer_email, invoice_reference, payment_provider, free_order, version, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(
		&o.ID, &o.RegistrationID, &o.OrganizationID, &o.Status,
		&o.CustomerName, &o.CustomerEmail, &o.InvoiceReference, &o.PaymentProvider,
		&o.FreeOrder, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (registration_id, organization_id, status, customer_name, customer_email, invoice_reference, payment_provider, free_order, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10)
		RETURNING id, version
	`
	if err := tx.QueryRowContext(ctx, query,
		order.RegistrationID, order.OrganizationID, order.Status,
		order.CustomerName, order.CustomerEmail, order.InvoiceReference,
		order.PaymentProvider, order.FreeOrder, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID, &order.Version); err != nil {
		return err
	}

	for _, l := range order.Lines {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, variant_id, product_name, quantity, price, vat_percent)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, order.ID, l.ProductID, l.VariantID, l.ProductName, l.Quantity, l.Price, l.VatPercent).Scan(&l.ID); err != nil {
			return err
		}
		l.OrderID = order.ID
	}
	return tx.Commit()
}

func (r *orderRepository) loadLines(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, product_id, variant_id, product_name, quantity, price, vat_percent
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		l := &domain.OrderLine{}
		var variantNull sql.NullInt64
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &variantNull, &l.ProductName, &l.Quantity, &l.Price, &l.VatPercent); err != nil {
			return err
		}
		if variantNull.Valid {
			l.VariantID = &variantNull.Int64
		}
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64, orgID int) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND organization_id = $2
	`
	o, err := scanOrder(r.DB.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) GetOpenByRegistrationID(ctx context.Context, registrationID int64) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE registration_id = $1 AND status = 'draft'
		ORDER BY id DESC
		LIMIT 1
	`
	o, err := scanOrder(r.DB.QueryRowContext(ctx, query, registrationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ReplaceLines swaps the full line set in one transaction, guarded by the
// order version. Zero rows on the version bump means a lost race.
func (r *orderRepository) ReplaceLines(ctx context.Context, orderID int64, version int, lines []*domain.OrderLine) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2 AND status = 'draft'
	`, orderID, version)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	for _, l := range lines {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, variant_id, product_name, quantity, price, vat_percent)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, orderID, l.ProductID, l.VariantID, l.ProductName, l.Quantity, l.Price, l.VatPercent).Scan(&l.ID); err != nil {
			return err
		}
		l.OrderID = orderID
	}
	return tx.Commit()
}

func (r *orderRepository) SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus, version int) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
	`, status, orderID, version)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *orderRepository) ListByIDs(ctx context.Context, ids []int64, orgID int) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(ids))
	if len(ids) == 0 {
		return orders, nil
	}
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ANY($1) AND organization_id = $2
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids), orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) AppendLog(ctx context.Context, orderID int64, message string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO order_log (order_id, message, created_at)
		VALUES ($1, $2, NOW())
	`, orderID, message)
	return err
}

func (r *orderRepository) ListLog(ctx context.Context, orderID int64) ([]*domain.OrderLogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, message, created_at
		FROM order_log
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.OrderLogEntry, 0)
	for rows.Next() {
		e := &domain.OrderLogEntry{}
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
