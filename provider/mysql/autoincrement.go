package mysql

import "strings"

// autoIncrement detects generated keys from the catalog's EXTRA field.
type autoIncrement struct{}

func (autoIncrement) Detect(extra string) bool {
	return strings.Contains(strings.ToLower(extra), "auto_increment")
}
