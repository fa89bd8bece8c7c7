// Package config loads an optional YAML profile that overrides the built-in
// per-dialect type-resolution defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sqlshape/sqlshape/pkg/dialect"
	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// Defaults is one dialect's override block. Absent fields keep the built-in
// value, so a profile only needs to name what it changes.
type Defaults struct {
	StringLength     *int  `yaml:"stringLength"`
	MaxStringLength  *int  `yaml:"maxStringLength"`
	DecimalPrecision *int  `yaml:"decimalPrecision"`
	DecimalScale     *int  `yaml:"decimalScale"`
	UnicodeByDefault *bool `yaml:"unicodeByDefault"`
}

// Profile is a parsed configuration file. Dialect keys accept canonical IDs
// and any registered alias ("postgresql", "sqlserver", "mariadb", ...).
type Profile struct {
	Dialects map[string]Defaults `yaml:"dialects"`
}

// Load reads a profile from path. A missing file is not an error; it yields
// an empty profile so callers can pass a conventional location unconditionally.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &p, nil
}

// ContextFor returns id's resolution context with the profile's overrides
// layered on top of the built-in defaults. The capability registry is never
// modified; callers hand the returned context to a provider constructor such
// as postgres.NewWith. Unknown dialect keys are an error so typos do not
// silently no-op.
func (p *Profile) ContextFor(id dialect.ID) (sqltype.Context, error) {
	ctx := sqltype.ContextFor(id)
	for name, d := range p.Dialects {
		target, ok := dialect.ParseID(name)
		if !ok {
			return sqltype.Context{}, fmt.Errorf("config: unknown dialect %q", name)
		}
		if target != id {
			continue
		}
		if d.StringLength != nil {
			ctx.DefaultStringLength = *d.StringLength
		}
		if d.MaxStringLength != nil {
			ctx.MaxStringLength = *d.MaxStringLength
		}
		if d.DecimalPrecision != nil {
			ctx.DefaultDecimalPrecision = *d.DecimalPrecision
		}
		if d.DecimalScale != nil {
			ctx.DefaultDecimalScale = *d.DecimalScale
		}
		if d.UnicodeByDefault != nil {
			ctx.UnicodeByDefault = *d.UnicodeByDefault
		}
	}
	return ctx, nil
}
