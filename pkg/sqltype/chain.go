package sqltype

import "strings"

// Affinity buckets resolution rules into a fixed category ordering. Several
// dialects reuse one storage class for multiple semantic kinds (a fixed
// 36-character string may be a GUID or a plain string), so the walk order is
// part of the contract, not an implementation detail.
type Affinity int

const (
	AffinityBoolean Affinity = iota
	AffinityNumeric
	AffinityTemporal
	AffinityText
	AffinityBinary
	AffinityJSON
	AffinityGeometry
	AffinitySpecial
	AffinityFallback

	affinityCount
)

// ForwardRule converts a semantic descriptor to a dialect type, or returns
// nil to pass to the next rule. Rules must be pure.
type ForwardRule func(s SemanticType, ctx Context) *SQLType

// ReverseRule converts a bare catalog type name plus its metadata to a
// semantic descriptor, or returns nil to pass to the next rule.
type ReverseRule func(baseName string, meta CatalogMeta, ctx Context) *SemanticType

// ForwardFallback is the terminal forward rule. It is total: every semantic
// descriptor resolves to some dialect type.
type ForwardFallback func(s SemanticType, ctx Context) SQLType

// ReverseFallback is the terminal reverse rule. Unknown type names degrade to
// the dialect's opaque kind here rather than failing, so introspection keeps
// working against engine types this package has never heard of.
type ReverseFallback func(baseName string, meta CatalogMeta, ctx Context) SemanticType

// Map owns both resolution chains for one dialect. Build it once at startup,
// register any extension rules, then treat it as read-only; resolution itself
// is safe for concurrent use.
type Map struct {
	ctx Context

	forward [affinityCount][]ForwardRule
	reverse [affinityCount][]ReverseRule

	forwardFallback ForwardFallback
	reverseFallback ReverseFallback
}

// NewMap creates an empty rule map for the given context. Both fallbacks are
// mandatory; they are what makes resolution a total function.
func NewMap(ctx Context, ff ForwardFallback, rf ReverseFallback) *Map {
	if ff == nil || rf == nil {
		panic("sqltype: NewMap requires both fallback rules")
	}
	return &Map{ctx: ctx, forwardFallback: ff, reverseFallback: rf}
}

// Context returns the dialect context the map resolves against.
func (m *Map) Context() Context {
	return m.ctx
}

// RegisterForward appends a rule at the end of its affinity bucket, making it
// lower priority than every rule already registered there.
func (m *Map) RegisterForward(a Affinity, r ForwardRule) {
	m.forward[a] = append(m.forward[a], r)
}

// InsertForward prepends a rule at the head of its affinity bucket for
// callers that need to shadow a framework rule.
func (m *Map) InsertForward(a Affinity, r ForwardRule) {
	m.forward[a] = append([]ForwardRule{r}, m.forward[a]...)
}

// RegisterReverse appends a rule at the end of its affinity bucket.
func (m *Map) RegisterReverse(a Affinity, r ReverseRule) {
	m.reverse[a] = append(m.reverse[a], r)
}

// InsertReverse prepends a rule at the head of its affinity bucket.
func (m *Map) InsertReverse(a Affinity, r ReverseRule) {
	m.reverse[a] = append([]ReverseRule{r}, m.reverse[a]...)
}

// ResolveSQLType converts a semantic descriptor to this dialect's concrete
// column type. The first non-nil rule result wins; the fallback guarantees a
// result for every input.
func (m *Map) ResolveSQLType(s SemanticType) SQLType {
	for a := Affinity(0); a < affinityCount; a++ {
		for _, rule := range m.forward[a] {
			if out := rule(s, m.ctx); out != nil {
				return *out
			}
		}
	}
	return m.forwardFallback(s, m.ctx)
}

// ResolveSemanticType converts a catalog type name plus catalog metadata back
// to a semantic descriptor. The name is normalized to lower case with
// surrounding whitespace removed before matching; metadata is taken from the
// catalog fields only.
func (m *Map) ResolveSemanticType(baseName string, meta CatalogMeta) SemanticType {
	name := strings.ToLower(strings.TrimSpace(baseName))
	for a := Affinity(0); a < affinityCount; a++ {
		for _, rule := range m.reverse[a] {
			if out := rule(name, meta, m.ctx); out != nil {
				return *out
			}
		}
	}
	return m.reverseFallback(name, meta, m.ctx)
}
