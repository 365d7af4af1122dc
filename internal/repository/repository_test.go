package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/db/dbtest"
	"github.com/nurpe/contracts-service/internal/model"
)

func seedContract(t *testing.T, repo *ContractRepository, name string) model.Contract {
	t.Helper()
	contract := model.Contract{ContractName: name, StartDate: "2024-01-01", EndDate: "2024-12-31"}
	if err := repo.Create(context.Background(), &contract); err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if contract.ID == 0 {
		t.Fatal("contract id was not assigned")
	}
	return contract
}

func seedPoint(t *testing.T, repo *PointRepository, contractID uint, value string) model.Point {
	t.Helper()
	point := model.Point{ContractID: int64(contractID), Point: "p-" + value, Value: value}
	if err := repo.Create(context.Background(), &point); err != nil {
		t.Fatalf("create point: %v", err)
	}
	return point
}

func TestContractRepositoryListOrdersByID(t *testing.T) {
	database := dbtest.New(t)
	contracts := NewContractRepository(database)

	first := seedContract(t, contracts, "Alpha")
	second := seedContract(t, contracts, "Beta")

	got, err := contracts.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("unexpected contracts: %+v", got)
	}
}

func TestContractRepositoryListEmptyIsNotNil(t *testing.T) {
	contracts := NewContractRepository(dbtest.New(t))

	got, err := contracts.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestContractRepositoryUpdate(t *testing.T) {
	contracts := NewContractRepository(dbtest.New(t))
	ctx := context.Background()
	contract := seedContract(t, contracts, "Alpha")

	contract.ContractName = "Alpha v2"
	contract.EndDate = "2025-06-30"
	if err := contracts.Update(ctx, &contract); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := contracts.Get(ctx, contract.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ContractName != "Alpha v2" || got.EndDate != "2025-06-30" || got.StartDate != "2024-01-01" {
		t.Fatalf("unexpected contract after update: %+v", got)
	}

	missing := model.Contract{ID: 9999, ContractName: "x", StartDate: "x", EndDate: "x"}
	if err := contracts.Update(ctx, &missing); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("update missing: got=%v want=%v", err, gorm.ErrRecordNotFound)
	}
}

func TestContractRepositoryDeleteWithPoints(t *testing.T) {
	database := dbtest.New(t)
	contracts := NewContractRepository(database)
	points := NewPointRepository(database)
	ctx := context.Background()

	doomed := seedContract(t, contracts, "Doomed")
	kept := seedContract(t, contracts, "Kept")
	p1 := seedPoint(t, points, doomed.ID, "1")
	seedPoint(t, points, doomed.ID, "2")
	seedPoint(t, points, kept.ID, "3")

	if err := contracts.DeleteWithPoints(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := contracts.Get(ctx, doomed.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("contract still present: %v", err)
	}
	if _, err := points.Get(ctx, p1.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("point still present: %v", err)
	}
	remaining, err := points.ListAll(ctx)
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ContractID != int64(kept.ID) {
		t.Fatalf("unexpected remaining points: %+v", remaining)
	}

	if err := contracts.DeleteWithPoints(ctx, doomed.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: got=%v want=%v", err, gorm.ErrRecordNotFound)
	}
}

func TestPointRepositoryLifecycle(t *testing.T) {
	database := dbtest.New(t)
	contracts := NewContractRepository(database)
	points := NewPointRepository(database)
	ctx := context.Background()

	contract := seedContract(t, contracts, "Alpha")
	point := seedPoint(t, points, contract.ID, "10.5")

	listed, err := points.ListByContract(ctx, contract.ID)
	if err != nil {
		t.Fatalf("list by contract: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != point.ID {
		t.Fatalf("unexpected points: %+v", listed)
	}

	point.Point = "renamed"
	point.Value = "42"
	point.ContractID = 777
	if err := points.Update(ctx, &point); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := points.Get(ctx, point.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Point != "renamed" || got.Value != "42" || got.ContractID != int64(contract.ID) {
		t.Fatalf("unexpected point after update: %+v", got)
	}

	if err := points.Delete(ctx, point.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := points.Delete(ctx, point.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: got=%v want=%v", err, gorm.ErrRecordNotFound)
	}

	empty, err := points.ListByContract(ctx, 424242)
	if err != nil {
		t.Fatalf("list unknown contract: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
