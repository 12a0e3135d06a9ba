package adapters

import "stock_watchlist/internal/feature/watchlist/domain/entity"

// SelectionModel is the GORM model for the watchlist_selections table.
// Position keeps the user's ordering of the watch-list.
type SelectionModel struct {
	ID                    uint    `gorm:"primaryKey"`
	Position              int     `gorm:"not null;index"`
	Symbol                string  `gorm:"size:32;not null;uniqueIndex"`
	AlertThresholdPercent float64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM.
func (SelectionModel) TableName() string {
	return "watchlist_selections"
}

// ToEntity converts the GORM model to a domain entity.
func (m SelectionModel) ToEntity() entity.SelectedSymbol {
	return entity.SelectedSymbol{Symbol: m.Symbol, AlertThresholdPercent: m.AlertThresholdPercent}
}

// SelectionModelFromEntity converts a domain entity to a GORM model at the given position.
func SelectionModelFromEntity(s entity.SelectedSymbol, position int) SelectionModel {
	return SelectionModel{
		Position:              position,
		Symbol:                s.Symbol,
		AlertThresholdPercent: s.AlertThresholdPercent,
	}
}
