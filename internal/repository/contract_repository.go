package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) List(ctx context.Context) ([]model.Contract, error) {
	contracts := []model.Contract{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) Get(ctx context.Context, id uint) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).First(&contract, id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// Update overwrites every mutable column of the row identified by contract.ID.
func (r *ContractRepository) Update(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Contract{}, contract.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Contract{ID: contract.ID}).
			Select("contract_name", "start_date", "end_date").
			Updates(contract).Error
	})
}

// DeleteWithPoints removes the contract and every point that references it
// in one transaction.
func (r *ContractRepository) DeleteWithPoints(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Contract{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&model.Point{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Contract{}, id).Error
	})
}
