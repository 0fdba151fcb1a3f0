package structmap

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/reoring/structmap/i18n"
)

// Map is an ordered key/value view over the exported fields of one struct
// value. It aliases its parent: no field contents are copied or cached, reads
// observe the parent's current state, and writes land directly on the parent.
// The caller keeps the parent alive for as long as the view is used.
//
// V is the view's declared element type. Wrap fixes V = any (the inferred
// fallback, see ElemType); WrapAs lets the caller assert a narrower V, checked
// at each access rather than at construction.
//
// A Map provides no synchronization of its own: concurrent mutation of the
// same parent is a data race, exactly as for direct field access.
type Map[P any, V any] struct {
	parent *P
	layout *Layout
	unset  UnsetPolicy
}

// Wrap builds a field view over p with element type any. It panics when P is
// not a struct type.
func Wrap[P any](p *P) *Map[P, any] {
	return &Map[P, any]{parent: p, layout: LayoutOf[P]()}
}

// WrapAs builds a field view over p with the caller-asserted element type V.
// No check is performed at construction; a field value that does not fit V
// fails with a type_mismatch issue at the individual access. It panics when P
// is not a struct type.
func WrapAs[V any, P any](p *P) *Map[P, V] {
	return &Map[P, V]{parent: p, layout: LayoutOf[P]()}
}

// WithUnset returns a copy of the view using the given unset policy. The
// default is UnsetNever: Go fields are always initialized, so the
// default-returning paths of GetDefault/GetOrInsert never trigger unless
// UnsetNilValue is selected.
func (m *Map[P, V]) WithUnset(policy UnsetPolicy) *Map[P, V] {
	cp := *m
	cp.unset = policy
	return &cp
}

// Layout returns the field layout of P.
func (m *Map[P, V]) Layout() *Layout { return m.layout }

// Len returns the number of field slots. It never changes for a given P.
func (m *Map[P, V]) Len() int { return m.layout.Len() }

// Keys returns the external keys in declaration order. The returned slice is
// shared; callers must not modify it.
func (m *Map[P, V]) Keys() []string { return m.layout.Keys() }

// Has reports whether key names a field slot.
func (m *Map[P, V]) Has(key string) bool {
	_, ok := m.layout.IndexOf(key)
	return ok
}

// All returns a (key, value) sequence over the fields in declaration order.
// The sequence is restartable and live: it is not a snapshot, so a mutation
// of the parent mid-iteration is visible to not-yet-visited steps. For
// WrapAs-typed views, a field value that does not fit V panics; use Get for
// the checked form.
func (m *Map[P, V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, e := range m.layout.Entries() {
			v, err := m.read(e)
			if err != nil {
				panic("structmap: " + err.Error())
			}
			if !yield(e.Key, v) {
				return
			}
		}
	}
}

// Values returns the value sequence of All with keys discarded.
func (m *Map[P, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Get returns the live value of the field named key. Unknown keys fail with
// no_such_key.
func (m *Map[P, V]) Get(key string) (V, error) {
	e, err := m.entryOf(key)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.read(e)
}

// At returns the live value of the field at position i (0-based declaration
// order). At(i) and Get(Keys()[i]) agree for every valid i.
func (m *Map[P, V]) At(i int) (V, error) {
	e, err := m.entryAt(i)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.read(e)
}

// Set writes v into the field named key, in place on the parent. Unknown keys
// fail with no_such_key; a v that is not assignable to the field's declared
// type fails with type_mismatch, the same condition direct assignment would
// reject at compile time.
func (m *Map[P, V]) Set(key string, v V) error {
	e, err := m.entryOf(key)
	if err != nil {
		return err
	}
	return m.write(e, v)
}

// SetAt is Set addressed by position instead of key.
func (m *Map[P, V]) SetAt(i int, v V) error {
	e, err := m.entryAt(i)
	if err != nil {
		return err
	}
	return m.write(e, v)
}

// GetDefault returns def when the field named key is unset under the view's
// UnsetPolicy, and the field's current value otherwise. The parent is never
// mutated. An unknown key is always no_such_key: a missing key is an error, a
// missing value is not.
func (m *Map[P, V]) GetDefault(key string, def V) (V, error) {
	return m.GetDefaultFunc(key, func() V { return def })
}

// GetDefaultFunc is GetDefault with a lazily-evaluated default: supply runs
// at most once, and only when the field is unset.
func (m *Map[P, V]) GetDefaultFunc(key string, supply func() V) (V, error) {
	e, err := m.entryOf(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if m.isUnset(e) {
		return supply(), nil
	}
	return m.read(e)
}

// GetOrInsert returns the field's current value when set; when unset, it
// writes def into the field and returns it. Calling it twice yields the same
// value the second time, with the second default left unused.
func (m *Map[P, V]) GetOrInsert(key string, def V) (V, error) {
	return m.GetOrInsertFunc(key, func() V { return def })
}

// GetOrInsertFunc is GetOrInsert with a lazily-evaluated default: supply runs
// at most once, and only when the field is unset.
func (m *Map[P, V]) GetOrInsertFunc(key string, supply func() V) (V, error) {
	e, err := m.entryOf(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if m.isUnset(e) {
		def := supply()
		if err := m.write(e, def); err != nil {
			var zero V
			return zero, err
		}
		return def, nil
	}
	return m.read(e)
}

// ---- field slot plumbing ----

func (m *Map[P, V]) entryOf(key string) (Entry, error) {
	i, ok := m.layout.IndexOf(key)
	if !ok {
		return Entry{}, Issues{Issue{
			Path:    "/" + key,
			Code:    CodeNoSuchKey,
			Message: i18n.T(CodeNoSuchKey, nil),
			Hint:    "valid keys: " + fmt.Sprint(m.layout.Keys()),
		}}
	}
	return m.layout.entries[i], nil
}

func (m *Map[P, V]) entryAt(i int) (Entry, error) {
	e, ok := m.layout.Entry(i)
	if !ok {
		return Entry{}, Issues{Issue{
			Path:    "/",
			Code:    CodeNoSuchKey,
			Message: i18n.T(CodeNoSuchKey, nil),
			Hint:    fmt.Sprintf("index %d out of range [0,%d)", i, m.layout.Len()),
		}}
	}
	return e, nil
}

// slot returns the live, addressable reflect.Value of the field.
func (m *Map[P, V]) slot(e Entry) reflect.Value {
	return reflect.ValueOf(m.parent).Elem().Field(e.fieldIndex)
}

func (m *Map[P, V]) read(e Entry) (V, error) {
	raw := m.slot(e).Interface()
	v, ok := raw.(V)
	if !ok {
		var zero V
		// A nil interface-typed field fails the assertion even against an
		// interface V; nil is a valid value of any interface element type.
		if raw == nil && reflect.TypeOf((*V)(nil)).Elem().Kind() == reflect.Interface {
			return zero, nil
		}
		return zero, Issues{Issue{
			Path:    "/" + e.Key,
			Code:    CodeTypeMismatch,
			Message: i18n.T(CodeTypeMismatch, nil),
			Hint:    fmt.Sprintf("field type %s does not fit the view's element type %s", e.Type, reflect.TypeOf((*V)(nil)).Elem()),
		}}
	}
	return v, nil
}

func (m *Map[P, V]) write(e Entry, v V) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		// v is a nil interface value; only nilable field types accept it.
		if nilable(e.Type.Kind()) {
			m.slot(e).Set(reflect.Zero(e.Type))
			return nil
		}
		return Issues{Issue{
			Path:    "/" + e.Key,
			Code:    CodeTypeMismatch,
			Message: i18n.T(CodeTypeMismatch, nil),
			Hint:    fmt.Sprintf("cannot assign nil to field of type %s", e.Type),
		}}
	}
	if !rv.Type().AssignableTo(e.Type) {
		return Issues{Issue{
			Path:    "/" + e.Key,
			Code:    CodeTypeMismatch,
			Message: i18n.T(CodeTypeMismatch, nil),
			Hint:    fmt.Sprintf("expected %s, got %s", e.Type, rv.Type()),
		}}
	}
	m.slot(e).Set(rv)
	return nil
}

func (m *Map[P, V]) isUnset(e Entry) bool {
	if m.unset != UnsetNilValue {
		return false
	}
	fv := m.slot(e)
	return nilable(fv.Kind()) && fv.IsNil()
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
