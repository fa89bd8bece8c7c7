// Package extension lets host applications compose optional type libraries
// (geometry, network, range types) into a dialect's resolution chains without
// the core knowing any specific package name.
//
// The host implements Provider once per optional library and passes the set
// to Apply when building a dialect's type map. Absence of a library is never
// an error: its rules are simply not registered, and the affected columns
// resolve through the text/JSON fallbacks.
package extension

import (
	"sync"

	"github.com/sqlshape/sqlshape/pkg/sqltype"
)

// Provider describes one optional extension type library.
type Provider interface {
	// Name uniquely identifies the extension, e.g. "postgis".
	Name() string

	// Available probes for the library. It is called at most once per
	// process per name; the result is cached. Probe failure means absence,
	// never an error.
	Available() bool

	// Register installs the extension's conversion rules on the map. Called
	// only when Available reported true.
	Register(m *sqltype.Map)
}

// presence caches detection results per extension name for the lifetime of
// the process. LoadOrStore keeps concurrent first calls harmless: both probe,
// one result wins, and the probe is required to be side-effect free.
var presence sync.Map

// Present reports whether the extension is available, probing at most once
// per process.
func Present(p Provider) bool {
	if v, ok := presence.Load(p.Name()); ok {
		return v.(bool)
	}
	v, _ := presence.LoadOrStore(p.Name(), p.Available())
	return v.(bool)
}

// Apply registers every available provider's rules on the map. Unavailable
// providers are skipped silently.
func Apply(m *sqltype.Map, providers ...Provider) {
	for _, p := range providers {
		if Present(p) {
			p.Register(m)
		}
	}
}
