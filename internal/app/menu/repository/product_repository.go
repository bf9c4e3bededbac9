package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"muzzatheory/internal/app/menu/entity"
	"muzzatheory/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepository{db: db}
}

// encodeImages сериализует список URL изображений в TEXT-колонку
func encodeImages(images []string) (string, error) {
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("failed to encode product images: %w", err)
	}
	return string(data), nil
}

// decodeImages восстанавливает структурированный список из TEXT-колонки
func decodeImages(raw string) ([]string, error) {
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, fmt.Errorf("failed to decode product images: %w", err)
	}
	return images, nil
}

// Create сохраняет новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "products")
	defer timer.ObserveDuration()

	images, err := encodeImages(product.ProductImages)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (product_id, product_name, product_description, product_price, product_images, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Exec(ctx, query,
		product.ProductID,
		product.ProductName,
		product.ProductDescription,
		product.ProductPrice,
		images,
		product.CategoryID,
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	query := `
		SELECT product_id, product_name, product_description, product_price, product_images, category_id
		FROM products WHERE product_id = $1
	`

	var product entity.Product
	var rawImages string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ProductID,
		&product.ProductName,
		&product.ProductDescription,
		&product.ProductPrice,
		&rawImages,
		&product.CategoryID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	if product.ProductImages, err = decodeImages(rawImages); err != nil {
		return nil, err
	}

	return &product, nil
}

// GetAll получает все товары
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	query := `
		SELECT product_id, product_name, product_description, product_price, product_images, category_id
		FROM products
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var product entity.Product
		var rawImages string
		if err := rows.Scan(
			&product.ProductID,
			&product.ProductName,
			&product.ProductDescription,
			&product.ProductPrice,
			&rawImages,
			&product.CategoryID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if product.ProductImages, err = decodeImages(rawImages); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Update перезаписывает товар слитым состоянием из service layer
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	defer timer.ObserveDuration()

	images, err := encodeImages(product.ProductImages)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET product_name = $1, product_description = $2, product_price = $3, product_images = $4, category_id = $5
		WHERE product_id = $6
	`

	result, err := r.db.Exec(ctx, query,
		product.ProductName,
		product.ProductDescription,
		product.ProductPrice,
		images,
		product.CategoryID,
		product.ProductID,
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар безусловно
// Оферты товара уходят вместе с ним через ON DELETE CASCADE
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "products")
	defer timer.ObserveDuration()

	query := `DELETE FROM products WHERE product_id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
