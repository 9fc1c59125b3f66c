package storage

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"fitment-crawler/pkg/models"
)

const (
	insertProduct = `
		INSERT INTO car_parts_products (product_name, price, url, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	insertFitment = `
		INSERT INTO car_fitments (product_id, maker, model, engine, year_range)
		VALUES ($1, $2, $3, $4, $5)`
)

// PostgresStore loads catalog records into car_parts_products and
// car_fitments. It implements engine.Sink for ProductRecord.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Save(ctx context.Context, batch []models.ProductRecord) error {
	_, err := s.Import(ctx, batch)
	return err
}

// Import inserts each product and then its fitments. A product that fails to
// insert is logged and skipped; a failed fitment insert is logged and the
// product still counts. It returns the number of products inserted and only
// errors when ctx is done.
func (s *PostgresStore) Import(ctx context.Context, records []models.ProductRecord) (int, error) {
	count := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		var productID int64
		err := s.db.QueryRowContext(ctx, insertProduct, rec.ProductName, rec.Price, rec.URL, nil).Scan(&productID)
		if err != nil {
			s.logger.Error("product insert failed", zap.String("url", rec.URL), zap.Error(err))
			continue
		}

		for _, fit := range rec.Fitments {
			if _, err := s.db.ExecContext(ctx, insertFitment, productID, fit.Maker, fit.Model, fit.Engine, fit.YearRange); err != nil {
				s.logger.Warn("fitment insert failed",
					zap.Int64("product_id", productID),
					zap.String("maker", fit.Maker),
					zap.String("model", fit.Model),
					zap.Error(err))
			}
		}
		count++
	}

	s.logger.Info("catalog imported", zap.Int("inserted", count), zap.Int("total", len(records)))
	return count, nil
}
