// Package sqltype implements the bidirectional type-resolution core: a
// dialect-neutral SemanticType descriptor, a dialect-specific SQLType
// descriptor, and the affinity-ordered rule chains that convert between them.
//
// Each dialect provider builds one Map with its baseline rules at startup;
// optional extension libraries register additional rules through the same
// Register hooks. Resolution is total in both directions: the forward chain
// ends in a text/JSON/binary fallback and the reverse chain degrades unknown
// catalog names to KindOpaque instead of failing.
package sqltype
