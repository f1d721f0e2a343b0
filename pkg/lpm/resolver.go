package lpm

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Capability reports whether an optional integration is available at runtime.
type Capability func() bool

// snapshot is an immutable view of the resolver state. It is built off to the
// side and published with a single pointer swap.
type snapshot struct {
	bundled *Schema
	defs    map[Code]*Definition
	order   []Code
}

func emptySnapshot() *snapshot {
	return &snapshot{defs: map[Code]*Definition{}}
}

// Resolver holds the current code → Definition mapping.
// Reads are lock-free and safe from any goroutine. Writes (Initialize, Update)
// are serialized; between concurrent updates the last write wins.
type Resolver struct {
	allow        map[Code]bool
	capabilities map[Code]Capability
	log          logrus.FieldLogger

	mu      sync.Mutex
	current atomic.Pointer[snapshot]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAllowList replaces DefaultExposed as the set of codes that may ever be resolved.
func WithAllowList(codes []Code) Option {
	return func(r *Resolver) {
		r.allow = make(map[Code]bool, len(codes))
		for _, c := range codes {
			r.allow[c] = true
		}
	}
}

// WithCapability gates code on available. The predicate is evaluated on every
// Initialize and Update.
func WithCapability(code Code, available Capability) Option {
	return func(r *Resolver) {
		r.capabilities[code] = available
	}
}

// WithFinancialConnections gates the bank-account linking method on available.
func WithFinancialConnections(available Capability) Option {
	return WithCapability(FinancialConnectionsCode, available)
}

// WithLogger sets the logger used to report fallbacks and rejected payloads.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates an empty resolver. Call Initialize or InitializeDefault
// before the first Update so that bundled fallbacks are available.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		capabilities: make(map[Code]Capability),
	}
	WithAllowList(DefaultExposed)(r)
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		r.log = discard
	}
	r.current.Store(emptySnapshot())
	return r
}

// InitializeDefault initializes the resolver from the embedded schema.
func (r *Resolver) InitializeDefault() {
	r.Initialize(bundledSchema)
}

// Initialize parses the bundled schema, keeps it as the fallback source for later
// updates, and publishes every entry that passes the allow-list and capability gates.
// A malformed schema leaves the resolver empty.
func (r *Resolver) Initialize(bundled []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schema, err := ParseSchema(bundled)
	if err != nil {
		r.log.WithError(err).Error("bundled schema unusable, no payment methods available")
		r.current.Store(emptySnapshot())
		return
	}
	r.logDiagnostics("bundled", schema)

	next := &snapshot{
		bundled: schema,
		defs:    make(map[Code]*Definition, len(schema.Entries)),
	}
	for _, def := range schema.Entries {
		if !r.exposable(def.Code) {
			continue
		}
		next.add(def)
	}

	r.current.Store(next)
	r.log.WithField("codes", next.order).Debug("initialized payment methods")
}

// Update resolves exposed against the server schema, falling back entry by entry
// to the bundled schema. A code is kept only if it is in exposed, in the allow-list,
// passes its capability gate, and has a definition in either schema.
//
// The result lists bundled codes in bundled order, then server-only codes in server
// order. It replaces the current mapping only when non-empty.
func (r *Resolver) Update(exposed []Code, serverSchema string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current.Load()

	var server *Schema
	if strings.TrimSpace(serverSchema) != "" {
		parsed, err := ParseSchema([]byte(serverSchema))
		if err != nil {
			r.log.WithError(err).Warn("server schema unusable, using bundled definitions")
		} else {
			server = parsed
			r.logDiagnostics("server", server)
		}
	}

	wanted := make(map[Code]bool, len(exposed))
	for _, c := range exposed {
		wanted[c] = true
	}

	candidates := make([]Code, 0, len(exposed))
	seen := make(map[Code]bool, len(exposed))
	for _, c := range append(prev.bundled.Codes(), server.Codes()...) {
		if seen[c] || !wanted[c] {
			continue
		}
		seen[c] = true
		candidates = append(candidates, c)
	}

	next := &snapshot{
		bundled: prev.bundled,
		defs:    make(map[Code]*Definition, len(candidates)),
	}
	for _, code := range candidates {
		if !r.exposable(code) {
			continue
		}
		if def, ok := server.Lookup(code); ok {
			next.add(def)
			continue
		}
		if def, ok := prev.bundled.Lookup(code); ok {
			r.log.WithField("code", code).Debug("no usable server definition, using bundled")
			next.add(def)
		}
	}

	if len(next.order) == 0 {
		r.log.WithField("exposed", exposed).Warn("update resolved no payment methods, keeping previous mapping")
		return
	}

	r.current.Store(next)
	r.log.WithField("codes", next.order).Debug("updated payment methods")
}

// FromCode returns the resolved definition for code.
func (r *Resolver) FromCode(code Code) (*Definition, bool) {
	def, ok := r.current.Load().defs[code]
	return def, ok
}

// Codes returns the currently resolved codes in order.
func (r *Resolver) Codes() []Code {
	snap := r.current.Load()
	out := make([]Code, len(snap.order))
	copy(out, snap.order)
	return out
}

// Values returns the currently resolved definitions in order.
func (r *Resolver) Values() []*Definition {
	snap := r.current.Load()
	out := make([]*Definition, 0, len(snap.order))
	for _, code := range snap.order {
		out = append(out, snap.defs[code])
	}
	return out
}

func (r *Resolver) exposable(code Code) bool {
	if !r.allow[code] {
		return false
	}
	if gate, ok := r.capabilities[code]; ok && !gate() {
		return false
	}
	return true
}

func (r *Resolver) logDiagnostics(source string, schema *Schema) {
	for _, rej := range schema.Rejected {
		r.log.WithFields(logrus.Fields{
			"source": source,
			"index":  rej.Index,
			"code":   rej.Code,
		}).Debug("rejected schema entry: " + rej.Reason)
	}
	for _, skip := range schema.Skipped {
		r.log.WithFields(logrus.Fields{
			"source": source,
			"code":   skip.Code,
			"type":   skip.Type,
		}).Debug("skipped unknown field type")
	}
}

func (s *snapshot) add(def *Definition) {
	if _, ok := s.defs[def.Code]; ok {
		return
	}
	s.defs[def.Code] = def
	s.order = append(s.order, def.Code)
}
