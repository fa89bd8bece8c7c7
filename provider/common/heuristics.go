// Package common holds pipeline helpers shared by the dialect providers.
package common

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/sqlshape/sqlshape/pkg/model"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// MatchCheckColumn attributes a check expression to a column by whole-word
// matching. The match must be unique: an expression naming two columns, or a
// column name that only occurs inside a longer identifier (price inside
// price_usd), yields no attribution rather than a wrong one.
func MatchCheckColumn(expr string, columns []string) (string, bool) {
	words := splitWords(expr)

	var matched string
	for _, col := range columns {
		if !containsFold(words, col) {
			continue
		}
		if matched != "" && !strings.EqualFold(matched, col) {
			return "", false
		}
		matched = col
	}
	return matched, matched != ""
}

func splitWords(expr string) []string {
	return strings.FieldsFunc(expr, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$'
	})
}

func containsFold(words []string, want string) bool {
	for _, w := range words {
		if strings.EqualFold(w, want) {
			return true
		}
	}
	return false
}

// guidGenerators are the default-expression functions the engines use to
// produce GUIDs.
var guidGenerators = map[string]struct{}{
	"gen_random_uuid":  {},
	"uuid_generate_v1": {},
	"uuid_generate_v4": {},
	"uuid":             {},
	"uuid_to_bin":      {},
	"newid":            {},
	"newsequentialid":  {},
	"sys_guid":         {},
}

// IsGUIDDefault reports whether a column default expression produces a GUID,
// either a literal UUID value or a call to a known generator function.
func IsGUIDDefault(expr string) bool {
	s := strings.TrimSpace(strings.ToLower(expr))
	if s == "" {
		return false
	}

	// Peel casts and wrapping parens: ('...'::uuid), (newid()).
	s = strings.TrimSpace(trimCast(s))
	for strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
		s = strings.TrimSpace(trimCast(s))
	}

	if name, ok := callName(s); ok {
		_, known := guidGenerators[name]
		return known
	}

	s = strings.Trim(s, `'"`)
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	return false
}

// ClassifyGUIDDefault upgrades a text or binary column whose default is a
// GUID-producing expression to the GUID kind. Engines without a native GUID
// type store them in char(36) or raw/varbinary(16) columns, so the default is
// the only catalog evidence of the column's intent.
func ClassifyGUIDDefault(col *model.Column, def string) {
	if def == "" || !IsGUIDDefault(def) {
		return
	}
	switch col.Type.Kind {
	case sqltype.KindString, sqltype.KindChar, sqltype.KindBinary:
		col.Type.Kind = sqltype.KindGUID
	}
}

func trimCast(s string) string {
	if i := strings.Index(s, "::"); i >= 0 {
		return s[:i]
	}
	return s
}

func callName(s string) (string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", false
	}
	name := strings.TrimSpace(s[:open])
	// Strip schema qualifiers like sys.newid or dbo.newid.
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", false
		}
	}
	return name, name != ""
}
