package structmap

// Package structmap provides:
//
// - A zero-copy, ordered key/value view over the exported fields of any struct (Wrap/WrapAs)
// - A per-type field-layout inspector with memoized results (Inspect/LayoutOf)
// - Get/Set by key or position, plus get-with-default and get-or-insert helpers
// - Instance-free field cursors (Fields/FieldAt/FieldNamed/FieldOf)
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place codecs under codec/ and the CLI under cmd/structmap.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	type User struct {
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//
//	u := User{Name: "ada", Age: 36}
//	m := structmap.Wrap(&u)
//	for k, v := range m.All() { ... }
//	v, err := m.Get("name")
//	err = m.Set("age", 37)
//
// The view aliases its parent: it never copies field contents, and mutation
// through the view is immediately visible to the parent and to every other
// view over it. The caller is responsible for keeping the parent alive and
// for synchronizing concurrent mutation, exactly as for direct field access.
