package store

import (
	"fmt"
	"regexp"

	"github.com/0xalexb/hjarta-config/config"
)

// DefaultTable is the table used when no table name is configured.
const DefaultTable = "configuration_settings"

// ErrInvalidTableName is returned for table names that are not plain lowercase identifiers.
var ErrInvalidTableName = fmt.Errorf("%w: invalid table name", config.ErrMisconfigured)

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// ValidateTableName returns ErrInvalidTableName when name is not valid.
func ValidateTableName(name string) error {
	if !IsValidTableName(name) {
		return fmt.Errorf("%w: %q (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", ErrInvalidTableName, name)
	}

	return nil
}
