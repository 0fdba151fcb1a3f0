package gen

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EmitsCursorsInDeclarationOrder(t *testing.T) {
	src, err := Generate("testdata/sample", []string{"Item"})
	require.NoError(t, err)
	t.Log(spew.Sdump(strings.Split(string(src), "\n")))

	out := string(src)
	require.Contains(t, out, "// Code generated by structmap generate. DO NOT EDIT.")
	require.Contains(t, out, "package sample")
	require.Contains(t, out, `ItemSKU = structmap.MustFieldNamed[Item]("sku")`)
	require.Contains(t, out, `ItemCount = structmap.MustFieldNamed[Item]("Count")`)
	require.Contains(t, out, `ItemState = structmap.MustFieldNamed[Item]("state")`)
	require.Contains(t, out, "var ItemFields = structmap.Fields[Item]()")

	// disabled and unexported fields stay out
	require.NotContains(t, out, "ItemNote")
	require.NotContains(t, out, "hidden")

	// declaration order is preserved
	require.Less(t, strings.Index(out, "ItemSKU"), strings.Index(out, "ItemCount"))
	require.Less(t, strings.Index(out, "ItemCount"), strings.Index(out, "ItemState"))
}

func TestGenerate_UnknownType(t *testing.T) {
	_, err := Generate("testdata/sample", []string{"Ghost"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestGenerate_NoTypes(t *testing.T) {
	_, err := Generate("testdata/sample", nil)
	require.Error(t, err)
}

func TestResolveKey(t *testing.T) {
	cases := []struct {
		name, tag, want string
	}{
		{"Plain", "", "Plain"},
		{"Tagged", `json:"tagged"`, "tagged"},
		{"Opts", `json:"opted,omitempty"`, "opted"},
		{"Bare", `json:",omitempty"`, "Bare"},
		{"Off", `json:"-"`, "-"},
		{"Named", `structmap:"name=custom" json:"other"`, "custom"},
		{"Disabled", `structmap:"-"`, "-"},
	}
	for _, c := range cases {
		if got := resolveKey(c.name, c.tag); got != c.want {
			t.Fatalf("resolveKey(%q, %q) = %q, want %q", c.name, c.tag, got, c.want)
		}
	}
}
