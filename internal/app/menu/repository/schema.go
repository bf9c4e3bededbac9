package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Схема создается идемпотентно при старте процесса.
// UNIQUE на offers.product_id закрывает гонку check-then-insert
// при одновременном создании двух оферт на один товар.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		category_id UUID PRIMARY KEY,
		category_name VARCHAR(40) NOT NULL,
		category_description VARCHAR(255) NOT NULL,
		category_image TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id UUID PRIMARY KEY,
		product_name VARCHAR(100) NOT NULL,
		product_description VARCHAR(500) NOT NULL,
		product_price DOUBLE PRECISION NOT NULL,
		product_images TEXT NOT NULL,
		category_id UUID NOT NULL REFERENCES categories(category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		offer_id UUID PRIMARY KEY,
		product_id UUID NOT NULL UNIQUE REFERENCES products(product_id) ON DELETE CASCADE,
		offer_discount DOUBLE PRECISION NOT NULL,
		offer_finish_date TEXT NOT NULL
	)`,
}

// InitSchema создает таблицы меню, если их еще нет
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}
