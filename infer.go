package structmap

import "reflect"

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// ElemType computes the element type a field view of t should declare when
// none is given explicitly: the narrowest type every field value fits.
//
// Go has no structural join over types and no closed variant types, so two of
// the three classic strategies apply:
//   - exact-common-type: when every field declares the identical type, that type;
//   - dynamic fallback: any other mix folds to interface{}.
//
// A struct with zero fields yields interface{} (the empty join is universal).
// The fold is order-independent; declaration order is used only so the
// intermediate steps are deterministic.
func ElemType(t reflect.Type) (reflect.Type, error) {
	l, err := Inspect(t)
	if err != nil {
		return nil, err
	}
	return elemTypeOf(l), nil
}

// ElemTypeOf is the type-parameter form of ElemType. It panics when P is not
// a struct type, mirroring LayoutOf.
func ElemTypeOf[P any]() reflect.Type {
	return elemTypeOf(LayoutOf[P]())
}

func elemTypeOf(l *Layout) reflect.Type {
	entries := l.Entries()
	if len(entries) == 0 {
		return anyType
	}
	common := entries[0].Type
	for _, e := range entries[1:] {
		if e.Type != common {
			return anyType
		}
	}
	return common
}
