package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/niksmo/pricecompare/internal/core/domain"
)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

type productRow struct {
	ID            string
	Title         string
	Description   string
	Price         float64
	OriginalPrice float64
	Discount      float64
	Currency      string
	Platform      string
	Image         string
	URL           string
	Rating        sql.NullFloat64
	Reviews       int
	Availability  string
	Shipping      string
	Features      string
	Category      string
}

// LoadProducts reads the whole catalog in display order.
func (r ProductsRepository) LoadProducts(
	ctx context.Context,
) (ps []domain.Product, err error) {
	const op = "ProductsRepository.LoadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			id, title, description, price, original_price, discount,
			currency, platform, image, url, rating, reviews,
			availability, shipping, features::text, category
		FROM products
		ORDER BY position ASC, id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", op, closeErr)
		}
	}()

	for rows.Next() {
		var v productRow
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.Price, &v.OriginalPrice,
			&v.Discount, &v.Currency, &v.Platform, &v.Image, &v.URL,
			&v.Rating, &v.Reviews, &v.Availability, &v.Shipping,
			&v.Features, &v.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		p, err := v.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: product %q: %w", op, v.ID, err)
		}
		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (v productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		Price:         v.Price,
		OriginalPrice: v.OriginalPrice,
		Discount:      v.Discount,
		Currency:      v.Currency,
		Platform:      v.Platform,
		Image:         v.Image,
		URL:           v.URL,
		Reviews:       v.Reviews,
		Availability:  v.Availability,
		Shipping:      v.Shipping,
		Category:      v.Category,
	}

	if v.Rating.Valid {
		rating := v.Rating.Float64
		p.Rating = &rating
	}

	if err := json.Unmarshal([]byte(v.Features), &p.Features); err != nil {
		return domain.Product{}, err
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p, nil
}
