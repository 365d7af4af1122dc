package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidValue = errors.New("point value is not a number")
	ErrStorage      = errors.New("storage failure")
)

// storageError classifies a repository error: missing rows become
// ErrNotFound, anything else ErrStorage with the driver message kept.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
