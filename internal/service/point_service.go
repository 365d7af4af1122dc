package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nurpe/contracts-service/internal/model"
)

type PointRepository interface {
	Create(ctx context.Context, point *model.Point) error
	Get(ctx context.Context, id uint) (*model.Point, error)
	ListByContract(ctx context.Context, contractID uint) ([]model.Point, error)
	ListAll(ctx context.Context) ([]model.Point, error)
	Update(ctx context.Context, point *model.Point) error
	Delete(ctx context.Context, id uint) error
}

type PointService struct {
	repo PointRepository
}

type PointInput struct {
	ContractID int64
	Point      string
	Value      string
}

func NewPointService(repo PointRepository) *PointService {
	return &PointService{repo: repo}
}

// Create stores a point without checking that the contract exists.
func (s *PointService) Create(ctx context.Context, input PointInput) (*model.Point, error) {
	if err := validateValue(input.Value); err != nil {
		return nil, err
	}
	point := model.Point{
		ContractID: input.ContractID,
		Point:      input.Point,
		Value:      input.Value,
	}
	if err := s.repo.Create(ctx, &point); err != nil {
		return nil, storageError(err)
	}
	return &point, nil
}

func (s *PointService) Get(ctx context.Context, id uint) (*model.Point, error) {
	point, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return point, nil
}

func (s *PointService) ListByContract(ctx context.Context, contractID uint) ([]model.Point, error) {
	points, err := s.repo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, storageError(err)
	}
	return points, nil
}

// Update replaces the label and value; the owning contract never changes.
// A missing point is reported before the value is validated.
func (s *PointService) Update(ctx context.Context, id uint, input PointInput) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := validateValue(input.Value); err != nil {
		return err
	}
	point := model.Point{ID: id, Point: input.Point, Value: input.Value}
	return storageError(s.repo.Update(ctx, &point))
}

func (s *PointService) Delete(ctx context.Context, id uint) error {
	return storageError(s.repo.Delete(ctx, id))
}

func validateValue(value string) error {
	if _, err := ParseValue(value); err != nil {
		return fmt.Errorf("%w: value must be a number", ErrInvalidInput)
	}
	return nil
}

// ParseValue reads a stored point value as a finite float64. Underscores are
// accepted between digits ("1_000"); hexadecimal floats are not.
func ParseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if hasHexPrefix(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	s, ok := stripDigitSeparators(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	return v, nil
}

func hasHexPrefix(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// stripDigitSeparators drops underscores that sit between two digits and
// reports false for any other underscore.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
