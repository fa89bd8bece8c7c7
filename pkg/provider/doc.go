// Package provider defines the contract every dialect package implements:
// a type resolution map, a native type registry, and catalog introspection
// over a host-supplied connection.
//
// The package deliberately does not manage connections. Hosts connect with
// whatever driver and pooling they already use and hand the provider a
// Querier; the dialect packages ship thin adapters for their native drivers.
package provider
