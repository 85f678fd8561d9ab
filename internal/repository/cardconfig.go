package repository

import (
	"context"
	"time"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardConfigRepository interface {
	GetSettings(ctx context.Context) (*model.CardConfigSettings, error)
	ClaimRun(ctx context.Context, settings *model.CardConfigSettings, by string, at time.Time) (bool, error)
	ReplaceAuto(ctx context.Context, cards []*model.CardConfig) error
	FindAll(ctx context.Context) ([]*model.CardConfig, error)
}

type cardConfigRepoImpl struct {
	db *gorm.DB
}

func NewCardConfigRepository(db *gorm.DB) CardConfigRepository {
	return &cardConfigRepoImpl{
		db: db,
	}
}

// GetSettings returns the single settings row, creating a disabled default
// when none exists.
func (r *cardConfigRepoImpl) GetSettings(ctx context.Context) (*model.CardConfigSettings, error) {
	settings := &model.CardConfigSettings{ID: 1}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(settings).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).First(settings, "id = ?", 1).Error
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// ClaimRun advances the last-updated marker by compare-and-swap against the
// value the caller read. A false return means another run already claimed it.
func (r *cardConfigRepoImpl) ClaimRun(ctx context.Context, settings *model.CardConfigSettings, by string, at time.Time) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.CardConfigSettings{}).
		Where("id = ?", settings.ID)

	if settings.LastUpdatedAt == nil {
		q = q.Where("last_updated_at IS NULL")
	} else {
		q = q.Where("last_updated_at = ?", *settings.LastUpdatedAt)
	}

	result := q.Updates(map[string]interface{}{
		"last_updated_at": at,
		"last_updated_by": by,
	})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// ReplaceAuto swaps out every auto-generated card in one transaction.
func (r *cardConfigRepoImpl) ReplaceAuto(ctx context.Context, cards []*model.CardConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source = ?", "auto").Delete(&model.CardConfig{}).Error; err != nil {
			return err
		}

		if len(cards) == 0 {
			return nil
		}

		return tx.Create(&cards).Error
	})
}

func (r *cardConfigRepoImpl) FindAll(ctx context.Context) ([]*model.CardConfig, error) {
	var cards []*model.CardConfig
	err := r.db.WithContext(ctx).Order("id").Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cards, nil
}
