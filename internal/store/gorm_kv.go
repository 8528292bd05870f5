package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRow struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (slotRow) TableName() string {
	return "complaint_slots"
}

// GormKV stores slots as rows of the complaint_slots table.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (k *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var row slotRow
	if err := k.db.WithContext(ctx).
		Where("key = ?", key).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(row.Value), nil
}

func (k *GormKV) Set(ctx context.Context, key string, value []byte) error {
	row := slotRow{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return k.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
