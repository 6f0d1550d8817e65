package formgraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
)

// Level identifies which protocol handler a validation run came from.
type Level int

const (
	// LevelField is a single-field run triggered by a field value change.
	LevelField Level = iota
	// LevelModel is a whole-model run triggered by a submit.
	LevelModel
)

func (l Level) String() string {
	if l == LevelModel {
		return "model"
	}
	return "field"
}

// PreHook runs before a validation pass. It may return a replacement
// context carrying a cancellation signal, which is threaded through to the
// validator functions; the signal is advisory and the core does not abort
// mid-walk on cancellation. An error from the pre-hook is swallowed and
// treated as if no cancellation signal was produced. ref is nil for
// model-level runs.
type PreHook func(ctx context.Context, level Level, ref *FieldRef) (context.Context, error)

// PostHook runs after messages have been published. Its error is returned
// to the caller unchanged. ref is nil for model-level runs.
type PostHook func(ctx context.Context, level Level, ref *FieldRef) error

// Option configures a Validator.
type Option func(*Validator)

// WithSink replaces the default in-memory message sink.
func WithSink(sink MessageSink) Option {
	return func(v *Validator) {
		if sink != nil {
			v.sink = sink
		}
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(v *Validator) { v.cfg = cfg }
}

// WithPreHook installs the pre-validation lifecycle hook.
func WithPreHook(h PreHook) Option {
	return func(v *Validator) { v.pre = h }
}

// WithPostHook installs the post-validation lifecycle hook.
func WithPostHook(h PostHook) Option {
	return func(v *Validator) { v.post = h }
}

// Validator dispatches registered validation functions across a live model
// graph and reports per-field failures to the message sink. Runs are
// sequential and side-effect free apart from sink writes; the registry is
// shared read-only across runs while the visited set and failure list are
// allocated fresh per run.
type Validator struct {
	root     any
	rootName string
	reg      *Registry
	sink     MessageSink
	cfg      Config
	log      *slog.Logger
	pre      PreHook
	post     PostHook
}

// New wires a validator host for a root model instance. The model and a
// non-empty registry are hard preconditions: misconfiguration fails here,
// never silently later.
func New(root any, reg *Registry, opts ...Option) (*Validator, error) {
	if root == nil {
		return nil, ErrNilModel
	}
	// A struct value would be walked as a detached copy: field identities
	// could not address it and failure refs holding it may not even hash.
	if reflect.ValueOf(root).Kind() != reflect.Pointer {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidModel, root)
	}
	sch, _, ok := schemaFor(root)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidModel, root)
	}
	if reg.Len() == 0 {
		return nil, ErrEmptyRegistry
	}

	v := &Validator{
		root:     root,
		rootName: sch.Name,
		reg:      reg,
		sink:     NewMemorySink(),
		cfg:      DefaultConfig(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v, nil
}

// Sink exposes the message sink so the host can render failure state.
func (v *Validator) Sink() MessageSink {
	return v.sink
}

// OnFieldChanged validates a single field identified by its owning instance
// and field name. A field with no registered validator is a no-op reported
// as valid, not an error. Messages for the field identity are cleared before
// any fresh failures are published.
func (v *Validator) OnFieldChanged(ctx context.Context, owner any, field string) (bool, error) {
	ref := &FieldRef{Owner: owner, Field: field}
	runID := uuid.NewString()
	v.log.DebugContext(ctx, "field validation requested", "run_id", runID, "field", field)

	ctx = v.runPreHook(ctx, LevelField, ref)

	key := JoinKey(v.keyRoot(owner), field)
	env, ok := v.reg.lookup(key)
	if !ok || env.kind == KindNested {
		// Nested entries carry structural requirements only; the walker enforces them.
		v.log.DebugContext(ctx, "no validator registered", "run_id", runID, "key", key)
		return true, v.runPostHook(ctx, LevelField, ref)
	}

	res, err := invokeEnvelope(ctx, env, field, owner, v.root)
	if err != nil {
		return false, err
	}

	v.sink.Clear(*ref)
	if !res.IsValid() {
		v.sink.Add(*ref, v.formatMessages(stampPath(res.Failures(), key)))
	}
	v.log.DebugContext(ctx, "field validation finished", "run_id", runID, "key", key, "valid", res.IsValid())
	return res.IsValid(), v.runPostHook(ctx, LevelField, ref)
}

// Validate runs whole-model validation: all messages are cleared, then the
// graph walker publishes fresh per-field messages as it goes. Overall
// validity is "no failures anywhere in the aggregate".
func (v *Validator) Validate(ctx context.Context) (bool, error) {
	runID := uuid.NewString()
	v.log.DebugContext(ctx, "model validation requested", "run_id", runID)

	ctx = v.runPreHook(ctx, LevelModel, nil)

	v.sink.ClearAll()
	res, err := walkModel(ctx, v.root, v.reg, func(ref FieldRef, fails Failures) {
		v.sink.Add(ref, v.formatMessages(fails))
	})
	if err != nil {
		return false, err
	}

	v.log.DebugContext(ctx, "model validation finished",
		"run_id", runID, "valid", res.IsValid(), "failures", len(res.Failures()))
	return res.IsValid(), v.runPostHook(ctx, LevelModel, nil)
}

// keyRoot resolves the dotted-key root segment for an owning instance: the
// root type name when the instance is the root itself, otherwise the name
// of the root property whose subgraph contains the instance. An unlocatable
// owner collapses to a bare member key.
func (v *Validator) keyRoot(owner any) string {
	if sameInstance(owner, v.root) {
		return v.rootName
	}
	return pathFromRoot(v.root, owner, make(identitySet))
}

func sameInstance(a, b any) bool {
	pa, oka := refIdentity(reflect.ValueOf(a))
	pb, okb := refIdentity(reflect.ValueOf(b))
	return oka && okb && pa == pb
}

// runPreHook swallows hook errors: a failing pre-hook behaves as if it had
// produced no cancellation signal. Post-hook errors, in contrast, propagate
// to the caller; see runPostHook.
func (v *Validator) runPreHook(ctx context.Context, level Level, ref *FieldRef) context.Context {
	if v.pre == nil {
		return ctx
	}
	next, err := v.pre(ctx, level, ref)
	if err != nil {
		v.log.DebugContext(ctx, "pre-validation hook failed", "level", level.String(), "error", err)
		return ctx
	}
	if next != nil {
		return next
	}
	return ctx
}

func (v *Validator) runPostHook(ctx context.Context, level Level, ref *FieldRef) error {
	if v.post == nil {
		return nil
	}
	return v.post(ctx, level, ref)
}

// formatMessages renders failures for the sink, optionally prefixed with
// the display name per configuration.
func (v *Validator) formatMessages(fails Failures) []string {
	msgs := make([]string, 0, len(fails))
	for _, f := range fails {
		if !v.cfg.PrefixDisplayName {
			msgs = append(msgs, f.Message)
			continue
		}
		name := f.DisplayName
		if name == "" {
			name = deriveDisplayName(f.Field, v.cfg.DisplayNameLang)
		}
		msgs = append(msgs, name+" - "+f.Message)
	}
	return msgs
}
