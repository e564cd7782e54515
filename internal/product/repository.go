package product

import (
	"context"
	"database/sql"
	"errors"

	"sushi-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const productColumns = `
	p.id, p.category_id,
	p.name_ru, p.name_en, p.name_uk, p.name_nl,
	p.ingredients_ru, p.ingredients_en, p.ingredients_uk, p.ingredients_nl,
	p.price, p.image_url, p.is_popular, p.is_recommended, p.status
`

const productReturning = `
	id, category_id,
	name_ru, name_en, name_uk, name_nl,
	ingredients_ru, ingredients_en, ingredients_uk, ingredients_nl,
	price, image_url, is_popular, is_recommended, status
`

type Repository interface {
	GetProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input UpsertInput) (*Product, error)
	Update(ctx context.Context, id uint, input UpsertInput) (*Product, error)
	Disable(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(
		&p.ID, &p.CategoryID,
		&p.NameRu, &p.NameEn, &p.NameUk, &p.NameNl,
		&p.IngredientsRu, &p.IngredientsEn, &p.IngredientsUk, &p.IngredientsNl,
		&p.Price, &p.ImageURL, &p.IsPopular, &p.IsRecommended, &p.Status,
	)
}

// GetProducts returns all active products with their category summary,
// the flat shape served by GET /api/products.
func (r *repository) GetProducts(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`,
			c.id, c.name_ru, c.slug
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.status = $1
		ORDER BY p.id ASC
	`, StatusActive)
	if err != nil {
		log.Error("db: failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		var c CatRef
		if err := rows.Scan(
			&p.ID, &p.CategoryID,
			&p.NameRu, &p.NameEn, &p.NameUk, &p.NameNl,
			&p.IngredientsRu, &p.IngredientsEn, &p.IngredientsUk, &p.IngredientsNl,
			&p.Price, &p.ImageURL, &p.IsPopular, &p.IsRecommended, &p.Status,
			&c.ID, &c.NameRu, &c.Slug,
		); err != nil {
			log.Error("db: failed to scan product row", zap.Error(err))
			return nil, err
		}
		p.Category = &c
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *repository) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.id = $1 AND p.status = $2
	`, id, StatusActive), &p)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, input UpsertInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("name_ru", input.NameRu),
		zap.Uint("category_id", input.CategoryID),
	)

	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			category_id,
			name_ru, name_en, name_uk, name_nl,
			ingredients_ru, ingredients_en, ingredients_uk, ingredients_nl,
			price, image_url, is_popular, is_recommended
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING `+productReturning+`
	`,
		input.CategoryID,
		input.NameRu, input.NameEn, input.NameUk, input.NameNl,
		input.IngredientsRu, input.IngredientsEn, input.IngredientsUk, input.IngredientsNl,
		input.Price, input.ImageURL, input.IsPopular, input.IsRecommended,
	), &p)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// products_category_id_fkey
			return nil, ErrCategoryNotFound
		}
		log.Error("db: failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpsertInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.Uint("product_id", id))

	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, `
		UPDATE products SET
			category_id = $1,
			name_ru = $2, name_en = $3, name_uk = $4, name_nl = $5,
			ingredients_ru = $6, ingredients_en = $7, ingredients_uk = $8, ingredients_nl = $9,
			price = $10, image_url = $11, is_popular = $12, is_recommended = $13
		WHERE id = $14 AND status = $15
		RETURNING `+productReturning+`
	`,
		input.CategoryID,
		input.NameRu, input.NameEn, input.NameUk, input.NameNl,
		input.IngredientsRu, input.IngredientsEn, input.IngredientsUk, input.IngredientsNl,
		input.Price, input.ImageURL, input.IsPopular, input.IsRecommended,
		id, StatusActive,
	), &p)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrCategoryNotFound
		}
		log.Error("db: failed to update product", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

// Disable soft-deletes a product. Historical order items keep their
// snapshot and their product reference stays valid.
func (r *repository) Disable(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET status = $1 WHERE id = $2 AND status = $3
	`, StatusDisabled, id, StatusActive)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to disable product",
			zap.Uint("product_id", id),
			zap.Error(err),
		)
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
