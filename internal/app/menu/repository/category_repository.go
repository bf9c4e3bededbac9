package repository

import (
	"context"
	"errors"
	"fmt"

	"muzzatheory/internal/app/menu/entity"
	"muzzatheory/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceName = "menu-service"

type categoryRepository struct {
	db *pgxpool.Pool // Пул соединений с PostgreSQL
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create сохраняет новую категорию в PostgreSQL
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "categories")
	defer timer.ObserveDuration()

	query := `
		INSERT INTO categories (category_id, category_name, category_description, category_image)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		category.CategoryID,
		category.CategoryName,
		category.CategoryDescription,
		category.CategoryImage,
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID получает категорию по ID
// Отсутствие строки отражается как ErrCategoryNotFound, не как сбой хранилища
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	query := `
		SELECT category_id, category_name, category_description, category_image
		FROM categories WHERE category_id = $1
	`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.CategoryID,
		&category.CategoryName,
		&category.CategoryDescription,
		&category.CategoryImage,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return &category, nil
}

// GetAll получает все категории
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	query := `
		SELECT category_id, category_name, category_description, category_image
		FROM categories
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(
			&category.CategoryID,
			&category.CategoryName,
			&category.CategoryDescription,
			&category.CategoryImage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Update перезаписывает категорию целиком
// Слияние частичного патча с текущим состоянием делает service layer
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "categories")
	defer timer.ObserveDuration()

	query := `
		UPDATE categories
		SET category_name = $1, category_description = $2, category_image = $3
		WHERE category_id = $4
	`

	result, err := r.db.Exec(ctx, query,
		category.CategoryName,
		category.CategoryDescription,
		category.CategoryImage,
		category.CategoryID,
	)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete удаляет категорию
// Сначала проверяем ссылающиеся товары: категория с товарами не удаляется
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "categories")
	defer timer.ObserveDuration()

	var productCount int
	checkQuery := `SELECT COUNT(*) FROM products WHERE category_id = $1`
	if err := r.db.QueryRow(ctx, checkQuery, id).Scan(&productCount); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return false, fmt.Errorf("failed to check products in category: %w", err)
	}

	if productCount > 0 {
		return false, ErrCategoryHasProducts
	}

	query := `DELETE FROM categories WHERE category_id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		// Ловим foreign key constraint на случай гонки между проверкой и удалением
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return false, ErrCategoryHasProducts
		}
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
