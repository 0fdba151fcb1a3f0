package structmap

import (
	"reflect"

	"github.com/reoring/structmap/i18n"
)

// Field identifies one declared field of P by key, declared type, and 0-based
// position, without requiring a live instance. Obtain it via FieldAt,
// FieldNamed, Fields, or the selector-based FieldOf, which guarantees
// compile-time linkage to the struct field.
type Field[P any] struct {
	key   string
	typ   reflect.Type
	index int
}

// Key returns the external key associated with this field.
func (f Field[P]) Key() string { return f.key }

// Index returns the field's 0-based position in declaration order.
func (f Field[P]) Index() int { return f.index }

// Type returns the field's declared type.
func (f Field[P]) Type() reflect.Type { return f.typ }

// Compare orders fields by declaration position; it reports -1, 0, or +1.
// Suitable for slices.SortFunc.
func (f Field[P]) Compare(other Field[P]) int {
	switch {
	case f.index < other.index:
		return -1
	case f.index > other.index:
		return 1
	}
	return 0
}

// Fields enumerates the fields of P in declaration order. It panics when P is
// not a struct type.
func Fields[P any]() []Field[P] {
	l := LayoutOf[P]()
	out := make([]Field[P], l.Len())
	for i, e := range l.Entries() {
		out[i] = Field[P]{key: e.Key, typ: e.Type, index: e.Index}
	}
	return out
}

// FieldAt returns the field of P at position i (0-based). Out-of-range
// positions fail with no_such_key.
func FieldAt[P any](i int) (Field[P], error) {
	l := LayoutOf[P]()
	e, ok := l.Entry(i)
	if !ok {
		return Field[P]{}, Issues{Issue{
			Path:    "/",
			Code:    CodeNoSuchKey,
			Message: i18n.T(CodeNoSuchKey, nil),
			Hint:    "index out of range",
		}}
	}
	return Field[P]{key: e.Key, typ: e.Type, index: e.Index}, nil
}

// FieldNamed returns the field of P with the given external key. Unknown keys
// fail with no_such_key.
func FieldNamed[P any](key string) (Field[P], error) {
	l := LayoutOf[P]()
	i, ok := l.IndexOf(key)
	if !ok {
		return Field[P]{}, Issues{Issue{
			Path:    "/" + key,
			Code:    CodeNoSuchKey,
			Message: i18n.T(CodeNoSuchKey, nil),
		}}
	}
	e := l.entries[i]
	return Field[P]{key: e.Key, typ: e.Type, index: e.Index}, nil
}

// MustFieldNamed is FieldNamed panicking on unknown keys. Intended for
// package-level declarations, including generated ones.
func MustFieldNamed[P any](key string) Field[P] {
	f, err := FieldNamed[P](key)
	if err != nil {
		panic("structmap.MustFieldNamed: " + err.Error())
	}
	return f
}

// FieldOf builds a Field for a top-level field of P selected by address.
// The selector must return the address of a top-level field, e.g.:
//
//	FieldOf[User](func(u *User) *string { return &u.Name })
//
// This guarantees compile-time errors if the field is renamed/removed.
func FieldOf[P any, F any](selector func(*P) *F) Field[P] {
	if selector == nil {
		panic("structmap.FieldOf: selector must not be nil")
	}
	var zero P
	// Get pointer to selected field within zero value of P
	fp := reflect.ValueOf(selector(&zero)).Pointer()

	rv := reflect.ValueOf(&zero).Elem()
	l := LayoutOf[P]()
	for _, e := range l.Entries() {
		fv := rv.Field(e.fieldIndex)
		if fv.CanAddr() && fv.Addr().Pointer() == fp {
			return Field[P]{key: e.Key, typ: e.Type, index: e.Index}
		}
	}
	panic("structmap.FieldOf: selector must return address of an exported top-level field of P")
}
