package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategorySeeder inserts the default garments categories
type CategorySeeder struct {
	repo   finance.CategoryRepository
	tx     shared.TxRunner
	logger *zap.Logger
}

// NewCategorySeeder creates a new CategorySeeder
func NewCategorySeeder(repo finance.CategoryRepository, tx shared.TxRunner, logger *zap.Logger) *CategorySeeder {
	return &CategorySeeder{repo: repo, tx: tx, logger: logger}
}

// Seed creates every default category that has no active namesake of the same type
// and returns how many were created
func (s *CategorySeeder) Seed(ctx context.Context) (int, error) {
	created := 0
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, seed := range finance.DefaultCategories() {
			_, err := s.repo.FindActiveByName(ctx, seed.Name, seed.Type)
			if err == nil {
				continue
			}
			if !errors.Is(err, finance.ErrCategoryNotFound) {
				return err
			}

			category, err := finance.NewCategory(seed.Name, seed.Description, seed.Type, nil)
			if err != nil {
				return err
			}
			if err := s.repo.Create(ctx, category); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}

	if created > 0 {
		s.logger.Info("Default categories seeded", zap.Int("created", created))
	}
	return created, nil
}
