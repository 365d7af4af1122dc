package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
)

type PointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) Create(ctx context.Context, point *model.Point) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *PointRepository) Get(ctx context.Context, id uint) (*model.Point, error) {
	var point model.Point
	if err := r.db.WithContext(ctx).First(&point, id).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *PointRepository) ListByContract(ctx context.Context, contractID uint) ([]model.Point, error) {
	points := []model.Point{}
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("id ASC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ListAll returns every point grouped by contract, oldest first within a
// contract.
func (r *PointRepository) ListAll(ctx context.Context) ([]model.Point, error) {
	points := []model.Point{}
	if err := r.db.WithContext(ctx).Order("contract_id ASC, id ASC").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *PointRepository) Update(ctx context.Context, point *model.Point) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Point{}, point.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Point{ID: point.ID}).
			Select("point", "value").
			Updates(point).Error
	})
}

func (r *PointRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Point{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
