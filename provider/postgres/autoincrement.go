package postgres

import "strings"

// autoIncrement detects generated key columns: identity columns and the older
// serial pattern, whose default is a nextval call on the backing sequence.
type autoIncrement struct{}

func (autoIncrement) Detect(isIdentity string, defaultExpr string) bool {
	if strings.EqualFold(isIdentity, "YES") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(defaultExpr), "nextval(")
}
