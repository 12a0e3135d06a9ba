// Package adapters はウォッチリスト設定の永続化実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

type selectionGorm struct {
	db *gorm.DB
}

var _ usecase.SelectionRepository = (*selectionGorm)(nil)

// NewSelectionRepository はGORMを使ったSelectionRepositoryを生成します（SQLite/PostgreSQL）。
func NewSelectionRepository(db *gorm.DB) *selectionGorm {
	return &selectionGorm{db: db}
}

// LoadSelections は保存済みの設定を保存時の順序で返します。
func (r *selectionGorm) LoadSelections(ctx context.Context) ([]entity.SelectedSymbol, error) {
	var rows []SelectionModel
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load selections: %w", err)
	}
	out := make([]entity.SelectedSymbol, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return entity.SanitizeSelections(out), nil
}

// SaveSelections は既存の設定を置き換えます。
func (r *selectionGorm) SaveSelections(ctx context.Context, selections []entity.SelectedSymbol) error {
	clean := entity.SanitizeSelections(selections)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SelectionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear selections: %w", err)
		}
		if len(clean) == 0 {
			return nil
		}
		ms := make([]SelectionModel, 0, len(clean))
		for i, s := range clean {
			ms = append(ms, SelectionModelFromEntity(s, i))
		}
		if err := tx.Create(&ms).Error; err != nil {
			return fmt.Errorf("failed to save selections: %w", err)
		}
		return nil
	})
}
