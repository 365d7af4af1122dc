package service

import (
	"context"

	"github.com/nurpe/contracts-service/internal/model"
)

type ContractRepository interface {
	List(ctx context.Context) ([]model.Contract, error)
	Get(ctx context.Context, id uint) (*model.Contract, error)
	Create(ctx context.Context, contract *model.Contract) error
	Update(ctx context.Context, contract *model.Contract) error
	DeleteWithPoints(ctx context.Context, id uint) error
}

type ContractService struct {
	repo ContractRepository
}

type ContractInput struct {
	ContractName string
	StartDate    string
	EndDate      string
}

func NewContractService(repo ContractRepository) *ContractService {
	return &ContractService{repo: repo}
}

func (s *ContractService) List(ctx context.Context) ([]model.Contract, error) {
	contracts, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return contracts, nil
}

func (s *ContractService) Get(ctx context.Context, id uint) (*model.Contract, error) {
	contract, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return contract, nil
}

func (s *ContractService) Create(ctx context.Context, input ContractInput) (*model.Contract, error) {
	contract := model.Contract{
		ContractName: input.ContractName,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
	}
	if err := s.repo.Create(ctx, &contract); err != nil {
		return nil, storageError(err)
	}
	return &contract, nil
}

func (s *ContractService) Update(ctx context.Context, id uint, input ContractInput) error {
	contract := model.Contract{
		ID:           id,
		ContractName: input.ContractName,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
	}
	return storageError(s.repo.Update(ctx, &contract))
}

// Delete removes the contract together with its points.
func (s *ContractService) Delete(ctx context.Context, id uint) error {
	return storageError(s.repo.DeleteWithPoints(ctx, id))
}
