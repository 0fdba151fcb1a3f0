// Package gen renders field-cursor declarations for named struct types, the
// output of the structmap generate command.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Generate loads the package rooted at dir and emits a single Go source file
// declaring structmap field cursors for each named struct type. The result is
// gofmt-formatted and belongs in the scanned package.
func Generate(dir string, typeNames []string) ([]byte, error) {
	if len(typeNames) == 0 {
		return nil, fmt.Errorf("no type names given")
	}

	cfg := &packages.Config{Mode: LoadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, got %d", dir, len(pkgs))
	}
	pkg := pkgs[0]

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "// Code generated by structmap generate. DO NOT EDIT.\n\n")
	fmt.Fprintf(buf, "package %s\n\n", pkg.Types.Name())
	fmt.Fprintf(buf, "import structmap %q\n\n", "github.com/reoring/structmap")

	for _, name := range typeNames {
		st, err := lookupStruct(pkg.Types, name)
		if err != nil {
			return nil, err
		}
		if err := renderType(buf, name, st); err != nil {
			return nil, err
		}
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

func lookupStruct(pkg *types.Package, name string) (*types.Struct, error) {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", name, pkg.Path())
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s is not a type in package %s", name, pkg.Path())
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %s is not a struct", name)
	}
	return st, nil
}

func renderType(buf *bytes.Buffer, name string, st *types.Struct) error {
	type slot struct{ goName, key string }
	var slots []slot
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}
		key := resolveKey(f.Name(), st.Tag(i))
		if key == "" || key == "-" {
			continue
		}
		slots = append(slots, slot{goName: f.Name(), key: key})
	}
	if len(slots) == 0 {
		return fmt.Errorf("type %s has no mappable fields", name)
	}

	fmt.Fprintf(buf, "// %s field cursors, declaration order.\n", name)
	fmt.Fprintf(buf, "var (\n")
	for _, s := range slots {
		fmt.Fprintf(buf, "\t%s%s = structmap.MustFieldNamed[%s](%q)\n", name, s.goName, name, s.key)
	}
	fmt.Fprintf(buf, ")\n\n")
	fmt.Fprintf(buf, "// %sFields enumerates the fields of %s in declaration order.\n", name, name)
	fmt.Fprintf(buf, "var %sFields = structmap.Fields[%s]()\n\n", name, name)
	return nil
}

// resolveKey mirrors the root package's key resolution rule over go/types
// inputs: structmap:"name=..." > json tag name > field name; "-" disables.
func resolveKey(fieldName, tag string) string {
	stag := reflect.StructTag(tag)
	if st := stag.Get("structmap"); st != "" {
		if st == "-" {
			return "-"
		}
		for _, p := range strings.Split(st, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := stag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] == "" {
				return fieldName
			}
			return jt[:i]
		}
		return jt
	}
	return fieldName
}
