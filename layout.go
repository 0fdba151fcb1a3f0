package structmap

import (
	"reflect"
	"strings"

	"github.com/reoring/structmap/i18n"
	"github.com/reoring/structmap/internal/typecache"
)

// Entry describes one field slot of a layout.
type Entry struct {
	Key   string       // External key (tag-resolved), unique within the layout.
	Index int          // Position in the layout, 0-based declaration order.
	Type  reflect.Type // Declared field type.

	fieldIndex int // Position in the struct as reflect sees it.
}

// Layout is the immutable field metadata of one struct type: external keys in
// declaration order, their declared types, and their positions. Layouts are
// computed once per type and shared; callers must not mutate returned slices.
type Layout struct {
	typ     reflect.Type
	entries []Entry
	keys    []string
	byKey   map[string]int
}

// Type returns the struct type the layout was computed from.
func (l *Layout) Type() reflect.Type { return l.typ }

// Len returns the number of field slots.
func (l *Layout) Len() int { return len(l.entries) }

// Keys returns the external keys in declaration order. The returned slice is
// shared; callers must not modify it.
func (l *Layout) Keys() []string { return l.keys }

// Entries returns all field slots in declaration order. The returned slice is
// shared; callers must not modify it.
func (l *Layout) Entries() []Entry { return l.entries }

// Entry returns the field slot at position i (0-based).
func (l *Layout) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

// IndexOf returns the position of key, if present.
func (l *Layout) IndexOf(key string) (int, bool) {
	i, ok := l.byKey[key]
	return i, ok
}

var layouts typecache.Cache[*Layout]

// Inspect computes the Layout of a struct type. Results are memoized per
// type: a second call with the same type returns the same *Layout. Non-struct
// types fail with a not_struct issue.
func Inspect(t reflect.Type) (*Layout, error) {
	if t == nil || t.Kind() != reflect.Struct {
		hint := "nil type"
		if t != nil {
			hint = "got " + t.Kind().String()
		}
		return nil, Issues{Issue{Path: "/", Code: CodeNotStruct, Message: i18n.T(CodeNotStruct, nil), Hint: hint}}
	}
	if l, ok := layouts.Load(t); ok {
		return l, nil
	}
	l, err := buildLayout(t)
	if err != nil {
		return nil, err
	}
	return layouts.LoadOrCompute(t, func() *Layout { return l }), nil
}

// LayoutOf returns the Layout of P. It panics when P is not a struct type;
// this is a programming-usage error, use Inspect for the error-returning form.
func LayoutOf[P any]() *Layout {
	l, err := Inspect(reflect.TypeOf((*P)(nil)).Elem())
	if err != nil {
		panic("structmap.LayoutOf: " + err.Error())
	}
	return l
}

func buildLayout(t reflect.Type) (*Layout, error) {
	n := t.NumField()
	l := &Layout{
		typ:   t,
		byKey: make(map[string]int, n),
	}
	for i := 0; i < n; i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := resolveKey(sf)
		if key == "" || key == "-" {
			continue
		}
		if _, dup := l.byKey[key]; dup {
			return nil, Issues{Issue{
				Path:    "/" + key,
				Code:    CodeDuplicateKey,
				Message: i18n.T(CodeDuplicateKey, nil),
				Hint:    "field " + sf.Name + " resolves to an already-used key",
			}}
		}
		l.byKey[key] = len(l.entries)
		l.entries = append(l.entries, Entry{
			Key:        key,
			Index:      len(l.entries),
			Type:       sf.Type,
			fieldIndex: i,
		})
		l.keys = append(l.keys, key)
	}
	return l, nil
}

// resolveKey applies the repository-wide rule to resolve a struct field's
// external key.
// Priority: structmap:"name=..." > json tag name > field name; "-" disables the field.
func resolveKey(sf reflect.StructField) string {
	if st := sf.Tag.Get("structmap"); st != "" {
		if st == "-" {
			return "-"
		}
		parts := strings.Split(st, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] == "" {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}
