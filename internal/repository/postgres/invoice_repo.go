package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventuras/internal/domain"
)

type invoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepository(db *sql.DB) domain.InvoiceRepository {
	return &invoiceRepository{
		DB: db,
	}
}

// CreateWithOrders inserts the invoice and attaches every order in a single
// transaction. The attachment guard rejects orders already carrying an unpaid
// invoice; rolling back leaves no partial invoice behind.
func (r *invoiceRepository) CreateWithOrders(ctx context.Context, inv *domain.Invoice, orderIDs []int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the order rows first so two concurrent invoicing attempts
	// serialize on the same set.
	if _, err := tx.ExecContext(ctx, `
		SELECT id FROM orders WHERE id = ANY($1) FOR UPDATE
	`, pq.Array(orderIDs)); err != nil {
		return err
	}

	var taken int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM orders o
		JOIN invoices i ON i.id = o.invoice_id
		WHERE o.id = ANY($1) AND i.paid = FALSE
	`, pq.Array(orderIDs)).Scan(&taken); err != nil {
		return err
	}
	if taken > 0 {
		return domain.ErrInvoicingConflict
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO invoices (organization_id, external_invoice_id, paid, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, inv.OrganizationID, inv.ExternalInvoiceID, inv.Paid, inv.CreatedAt).Scan(&inv.ID); err != nil {
		return err
	}

	for _, l := range inv.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_lines (invoice_id, description, quantity, price, vat_percent)
			VALUES ($1, $2, $3, $4, $5)
		`, inv.ID, l.Description, l.Quantity, l.Price, l.VatPercent); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET invoice_id = $1, status = 'invoiced', version = version + 1, updated_at = NOW()
		WHERE id = ANY($2) AND (invoice_id IS NULL OR invoice_id IN (SELECT id FROM invoices WHERE paid = TRUE))
	`, inv.ID, pq.Array(orderIDs))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows != int64(len(orderIDs)) {
		return domain.ErrInvoicingConflict
	}

	for _, orderID := range orderIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_log (order_id, message, created_at)
			VALUES ($1, 'attached to invoice ' || $2::text, NOW())
		`, orderID, inv.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64, orgID int) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, organization_id, external_invoice_id, paid, created_at
		FROM invoices
		WHERE id = $1 AND organization_id = $2
	`, id, orgID).Scan(&inv.ID, &inv.OrganizationID, &inv.ExternalInvoiceID, &inv.Paid, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	orderRows, err := r.DB.QueryContext(ctx, `SELECT id FROM orders WHERE invoice_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var orderID int64
		if err := orderRows.Scan(&orderID); err != nil {
			return nil, err
		}
		inv.OrderIDs = append(inv.OrderIDs, orderID)
	}
	if err := orderRows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.DB.QueryContext(ctx, `
		SELECT description, quantity, price, vat_percent
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		l := &domain.InvoiceLine{}
		if err := lineRows.Scan(&l.Description, &l.Quantity, &l.Price, &l.VatPercent); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, l)
	}
	return inv, lineRows.Err()
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id int64, orgID int) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE invoices
		SET paid = TRUE
		WHERE id = $1 AND organization_id = $2
	`, id, orgID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
