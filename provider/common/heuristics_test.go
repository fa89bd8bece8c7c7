package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCheckColumn(t *testing.T) {
	columns := []string{"price", "price_usd", "quantity"}

	tests := []struct {
		name string
		expr string
		want string
		ok   bool
	}{
		{"single whole word", "(`quantity` > 0)", "quantity", true},
		{"prefix of longer identifier does not leak", "(`price_usd` >= 0)", "price_usd", true},
		{"exact shorter name still matches", "(price > 0)", "price", true},
		{"two columns is ambiguous", "(price < price_usd)", "", false},
		{"no column named", "(1 = 1)", "", false},
		{"case insensitive", "([Quantity] BETWEEN 1 AND 10)", "quantity", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchCheckColumn(tt.expr, columns)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsGUIDDefault(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"gen_random_uuid()", true},
		{"(newid())", true},
		{"(NEWSEQUENTIALID())", true},
		{"SYS_GUID()", true},
		{"uuid()", true},
		{"'0e37df36-f698-11e6-8dd4-cb9ced3df976'::uuid", true},
		{"('0E37DF36-F698-11E6-8DD4-CB9CED3DF976')", true},
		{"dbo.newid()", true},
		{"now()", false},
		{"'hello'", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsGUIDDefault(tt.expr), tt.expr)
	}
}
