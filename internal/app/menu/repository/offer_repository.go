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

type offerRepository struct {
	db *pgxpool.Pool
}

// NewOfferRepository создает новый репозиторий оферт
func NewOfferRepository(db *pgxpool.Pool) OfferRepository {
	return &offerRepository{db: db}
}

// Оферты всегда читаются вместе со снапшотом товара
const offerSelect = `
	SELECT
		o.offer_id, o.product_id, o.offer_discount, o.offer_finish_date,
		p.product_id, p.product_name, p.product_description, p.product_price, p.product_images, p.category_id
	FROM offers o
	INNER JOIN products p ON o.product_id = p.product_id
`

func scanOfferWithProduct(row pgx.Row) (*entity.OfferWithProduct, error) {
	var offer entity.OfferWithProduct
	var rawImages string
	if err := row.Scan(
		&offer.OfferID,
		&offer.ProductID,
		&offer.OfferDiscount,
		&offer.OfferFinishDate,
		&offer.Product.ProductID,
		&offer.Product.ProductName,
		&offer.Product.ProductDescription,
		&offer.Product.ProductPrice,
		&rawImages,
		&offer.Product.CategoryID,
	); err != nil {
		return nil, err
	}

	images, err := decodeImages(rawImages)
	if err != nil {
		return nil, err
	}
	offer.Product.ProductImages = images

	return &offer, nil
}

// Create сохраняет новую оферту
// UNIQUE(product_id) страхует проверку уникальности в service layer от гонок
func (r *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "offers")
	defer timer.ObserveDuration()

	query := `
		INSERT INTO offers (offer_id, product_id, offer_discount, offer_finish_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		offer.OfferID,
		offer.ProductID,
		offer.OfferDiscount,
		offer.OfferFinishDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return ErrDuplicateOffer
			case "23503": // foreign_key_violation
				return ErrProductNotFound
			}
		}
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID получает оферту с вложенным товаром
func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OfferWithProduct, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "offers")
	defer timer.ObserveDuration()

	offer, err := scanOfferWithProduct(r.db.QueryRow(ctx, offerSelect+` WHERE o.offer_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get offer by id: %w", err)
	}

	return offer, nil
}

// GetAll получает все оферты с вложенными товарами
func (r *offerRepository) GetAll(ctx context.Context) ([]entity.OfferWithProduct, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "offers")
	defer timer.ObserveDuration()

	rows, err := r.db.Query(ctx, offerSelect)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get offers: %w", err)
	}
	defer rows.Close()

	var offers []entity.OfferWithProduct
	for rows.Next() {
		offer, err := scanOfferWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, *offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}

// GetByProductID ищет оферту заданного товара, исключая excludeOfferID.
// Используется проверкой "не более одной оферты на товар": при создании
// исключение пустое, при обновлении исключается сама обновляемая оферта.
func (r *offerRepository) GetByProductID(ctx context.Context, productID, excludeOfferID uuid.UUID) (*entity.Offer, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "offers")
	defer timer.ObserveDuration()

	query := `
		SELECT offer_id, product_id, offer_discount, offer_finish_date
		FROM offers WHERE product_id = $1 AND offer_id <> $2
	`

	var offer entity.Offer
	err := r.db.QueryRow(ctx, query, productID, excludeOfferID).Scan(
		&offer.OfferID,
		&offer.ProductID,
		&offer.OfferDiscount,
		&offer.OfferFinishDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get offer by product id: %w", err)
	}

	return &offer, nil
}

// Update перезаписывает оферту слитым состоянием
func (r *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "offers")
	defer timer.ObserveDuration()

	query := `
		UPDATE offers
		SET product_id = $1, offer_discount = $2, offer_finish_date = $3
		WHERE offer_id = $4
	`

	result, err := r.db.Exec(ctx, query,
		offer.ProductID,
		offer.OfferDiscount,
		offer.OfferFinishDate,
		offer.OfferID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateOffer
			case "23503":
				return ErrProductNotFound
			}
		}
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update offer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOfferNotFound
	}

	return nil
}

// Delete удаляет оферту
func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "offers")
	defer timer.ObserveDuration()

	query := `DELETE FROM offers WHERE offer_id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
