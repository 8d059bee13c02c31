package repositories

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// duplicate maps unique-constraint violations to ErrDuplicate. GORM only
// translates them when TranslateError is enabled, so the driver text is checked too.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}
