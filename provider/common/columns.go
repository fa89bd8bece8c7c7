package common

import (
	"strings"

	"github.com/sqlshape/sqlshape/pkg/model"
)

// ParseIndexColumns decodes a server-side aggregated column list. Each entry
// is a column name optionally followed by " DESC"; order is the order the
// aggregate emitted, which every pipeline pins with ORDER BY inside the
// aggregate.
func ParseIndexColumns(csv string) []model.IndexColumn {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]model.IndexColumn, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		col := model.IndexColumn{Name: p}
		if rest, ok := cutSuffixFold(p, " desc"); ok {
			col.Name = strings.TrimSpace(rest)
			col.Descending = true
		}
		out = append(out, col)
	}
	return out
}

// ParseNameList decodes a plain aggregated name list.
func ParseNameList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cutSuffixFold(s, suffix string) (string, bool) {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s[:len(s)-len(suffix)], true
	}
	return s, false
}
