package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumns = errors.New("csv is missing required columns")
	ErrEmptyInput     = errors.New("csv is empty")
	ErrTooManyRows    = errors.New("csv exceeds the row limit")
)

// MissingColumnsError rejects a whole batch. It names every required column
// so the user can fix the header in one pass.
type MissingColumnsError struct {
	Required []Column
	Missing  []Column
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: required %s; missing %s",
		ErrMissingColumns, joinColumns(e.Required), joinColumns(e.Missing))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

func joinColumns(cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
