package oracle

import "strings"

// autoIncrement detects identity columns and the pre-12c pattern of a
// sequence-backed default.
type autoIncrement struct{}

func (autoIncrement) Detect(identityColumn string, defaultExpr string) bool {
	if strings.EqualFold(identityColumn, "YES") {
		return true
	}
	return strings.Contains(strings.ToLower(defaultExpr), ".nextval")
}
