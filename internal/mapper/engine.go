package mapper

import (
	"fmt"

	"response-mapper/internal/common"
	"response-mapper/internal/logging"
	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

// Engine runs transforms. It holds no per-call state.
type Engine struct {
	log logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger pruning and container decisions are reported
// to at debug level.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine. Without options it logs nothing.
func New(opts ...Option) *Engine {
	e := &Engine{log: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

var defaultEngine = New()

// Transform applies t to n with a silent engine.
func Transform(n any, t *mapping.Table) (any, error) {
	return defaultEngine.Transform(n, t)
}

// TransformEach applies t to every element of a list with a silent engine.
func TransformEach(list any, t *mapping.Table) ([]any, error) {
	return defaultEngine.TransformEach(list, t)
}

// Transform applies t to n and returns the reshaped copy. A top-level value
// that is not a record, or an empty record, is returned as a copy.
// Index-keyed records are leaves only below the top level.
func (e *Engine) Transform(n any, t *mapping.Table) (any, error) {
	if t == nil {
		return nil, ErrNilTable
	}

	rec, ok := n.(*node.Record)
	if !ok || rec.Len() == 0 {
		return node.Clone(n), nil
	}

	log := e.log.With(map[string]any{"table": t.Name()})

	return (&run{table: t, log: log}).level(rec, "")
}

// TransformEach applies t to every record of list. Other elements are
// copied unchanged. The first formatter error aborts the whole list.
func (e *Engine) TransformEach(list any, t *mapping.Table) ([]any, error) {
	items, ok := list.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotList, node.KindOf(list))
	}

	out := make([]any, len(items))

	for i, item := range items {
		v, err := e.Transform(item, t)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out[i] = v
	}

	return out, nil
}

// run carries the state shared by every level of one transform.
type run struct {
	table *mapping.Table
	log   logging.Logger
}

// step is one key of a level, resolved before any output is written.
type step struct {
	key    string
	value  any
	specs  []mapping.Spec
	mapped bool
}

func (r *run) plan(in *node.Record) []step {
	steps := make([]step, 0, in.Len())

	for k, v := range in.All() {
		specs, ok := r.table.Targets(k)
		steps = append(steps, step{key: k, value: v, specs: specs, mapped: ok})
	}

	return steps
}

// frame is the output state of one record level.
type frame struct {
	in   *node.Record
	out  *node.Record
	path string
	// whitelist holds the keys an unmapped input key may survive pruning
	// under: the table's source keys plus every target written so far.
	whitelist common.Set
	// containers holds the parents created by Nest on this level.
	containers common.Set
}

// level transforms one record level. path is the dotted path of in.
func (r *run) level(in *node.Record, path string) (*node.Record, error) {
	f := &frame{
		in:         in,
		out:        node.NewRecord(),
		path:       path,
		whitelist:  common.NewSet(r.table.SourceKeys()...),
		containers: common.NewSet(),
	}

	for _, s := range r.plan(in) {
		if !s.mapped {
			r.unmapped(f, s)
			continue
		}

		if err := r.place(f, s); err != nil {
			return nil, err
		}
	}

	return f.out, nil
}

// unmapped passes through a key the table does not name. It never
// overwrites a target, but an input record at a Nest container is merged
// into that container when unmapped keys are kept.
func (r *run) unmapped(f *frame, s step) {
	keyPath := common.JoinKeyPath(f.path, s.key)

	if r.table.PruneUnmapped() && !f.whitelist.Has(s.key) {
		r.log.Debugf("pruned %s", keyPath)
		return
	}

	existing, ok := f.out.Get(s.key)
	if !ok {
		f.out.Set(s.key, node.Clone(s.value))
		return
	}

	container, isRecord := existing.(*node.Record)
	src, srcIsRecord := s.value.(*node.Record)

	if r.table.PruneUnmapped() || !f.containers.Has(s.key) || !isRecord || !srcIsRecord {
		r.log.Debugf("skipped %s: key already written by a target", keyPath)
		return
	}

	for k, v := range src.All() {
		if container.Has(k) {
			r.log.Debugf("skipped %s: key already written by a target", common.JoinKeyPath(keyPath, k))
			continue
		}

		container.Set(k, node.Clone(v))
	}
}

// place writes every target of a mapped key. A record value is transformed
// once, before any target is written; later targets get their own copy.
func (r *run) place(f *frame, s step) error {
	keyPath := common.JoinKeyPath(f.path, s.key)

	var (
		value  any
		placed bool
	)

	next := func() (any, error) {
		if placed {
			return node.Clone(value), nil
		}

		placed = true

		if child, ok := s.value.(*node.Record); ok && node.IsAssoc(child) {
			v, err := r.level(child, keyPath)
			if err != nil {
				return nil, err
			}

			value = v

			return value, nil
		}

		value = node.Clone(s.value)

		return value, nil
	}

	for _, spec := range s.specs {
		if spec.Kind() == mapping.KindFormat {
			if err := r.format(f, s, spec, keyPath); err != nil {
				return err
			}

			continue
		}

		v, err := next()
		if err != nil {
			return err
		}

		switch spec.Kind() {
		case mapping.KindIdentity:
			f.out.Set(s.key, v)
		case mapping.KindRename:
			f.out.Set(spec.Key(), v)
			f.whitelist.Add(spec.Key())
		case mapping.KindNest:
			r.nest(f, spec, v)
		}
	}

	return nil
}

// nest merges value into the container spec.Parent(), creating it first
// when needed.
func (r *run) nest(f *frame, spec mapping.Spec, value any) {
	parent, child := spec.Parent(), spec.Child()

	if existing, ok := f.out.Get(parent); ok {
		if container, isRecord := existing.(*node.Record); isRecord && container != nil {
			container.Set(child, value)
			return
		}

		r.log.Warnf("replacing %s value at %s with a container for %s",
			node.KindOf(existing), common.JoinKeyPath(f.path, parent), child)
	} else {
		r.log.Debugf("created container %s", common.JoinKeyPath(f.path, parent))
	}

	f.out.Set(parent, node.RecordOf(child, value))
	f.whitelist.Add(parent)
	f.containers.Add(parent)
}

func (r *run) format(f *frame, s step, spec mapping.Spec, keyPath string) error {
	v, err := spec.Formatter()(s.value, s.key, f.in)
	if err != nil {
		return &FormatterError{
			Table:     r.table.Name(),
			Path:      keyPath,
			Formatter: spec.FormatterName(),
			Err:       err,
		}
	}

	f.out.Set(s.key, v)

	return nil
}
