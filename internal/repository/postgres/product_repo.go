package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventuras/internal/domain"
)

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{
		DB: db,
	}
}

func (r *productRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Product, error) {
	query := `
		SELECT id, event_id, name, price, vat_percent, minimum_quantity, enable_quantity, visible, archived
		FROM products
		WHERE event_id = $1 AND archived = FALSE
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		p := &domain.Product{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Price, &p.VatPercent, &p.MinimumQuantity, &p.EnableQuantity, &p.Visible, &p.Archived); err != nil {
			return nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return products, nil
	}

	if err := r.attachVariants(ctx, products, ids); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) attachVariants(ctx context.Context, products []*domain.Product, ids []int64) error {
	query := `
		SELECT id, product_id, name, price, vat_percent, archived
		FROM product_variants
		WHERE product_id = ANY($1) AND archived = FALSE
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for rows.Next() {
		v := &domain.ProductVariant{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.VatPercent, &v.Archived); err != nil {
			return err
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `
		SELECT id, event_id, name, price, vat_percent, minimum_quantity, enable_quantity, visible, archived
		FROM products
		WHERE id = $1
	`
	p := &domain.Product{}
	err := r.DB.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.EventID, &p.Name, &p.Price, &p.VatPercent, &p.MinimumQuantity, &p.EnableQuantity, &p.Visible, &p.Archived,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachVariants(ctx, []*domain.Product{p}, []int64{p.ID}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (event_id, name, price, vat_percent, minimum_quantity, enable_quantity, visible, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	if err := r.DB.QueryRowContext(ctx, query,
		p.EventID, p.Name, p.Price, p.VatPercent, p.MinimumQuantity, p.EnableQuantity, p.Visible, p.Archived,
	).Scan(&p.ID); err != nil {
		return err
	}
	for _, v := range p.Variants {
		if err := r.DB.QueryRowContext(ctx, `
			INSERT INTO product_variants (product_id, name, price, vat_percent, archived)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, p.ID, v.Name, v.Price, v.VatPercent, v.Archived).Scan(&v.ID); err != nil {
			return err
		}
		v.ProductID = p.ID
	}
	return nil
}
