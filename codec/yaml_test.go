package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	structmap "github.com/reoring/structmap"
	"github.com/reoring/structmap/codec"
)

type service struct {
	Name     string `json:"name"`
	Replicas int    `json:"replicas"`
}

func TestEncodeYAML_DeclarationOrder(t *testing.T) {
	s := service{Name: "api", Replicas: 3}
	out, err := codec.EncodeYAML(structmap.Wrap(&s))
	require.NoError(t, err)
	require.Equal(t, "name: api\nreplicas: 3\n", string(out))
}

func TestDecodeYAML_WritesThroughView(t *testing.T) {
	var s service
	err := codec.DecodeYAML(structmap.Wrap(&s), []byte("replicas: 5\nname: worker\n"))
	require.NoError(t, err)
	require.Equal(t, service{Name: "worker", Replicas: 5}, s)
}

func TestDecodeYAML_UnknownMemberIsStrict(t *testing.T) {
	var s service
	err := codec.DecodeYAML(structmap.Wrap(&s), []byte("name: x\nghost: 1\n"))
	require.True(t, structmap.IsNoSuchKey(err), "got %v", err)
	require.Equal(t, "x", s.Name)
}

func TestDecodeYAML_NonMappingRoot(t *testing.T) {
	var s service
	err := codec.DecodeYAML(structmap.Wrap(&s), []byte("- a\n- b\n"))
	iss, ok := structmap.AsIssues(err)
	require.True(t, ok, "got %v", err)
	require.Equal(t, structmap.CodeParseError, iss[0].Code)
}

func TestDecodeYAML_BadValueSurfacesIssue(t *testing.T) {
	var s service
	err := codec.DecodeYAML(structmap.Wrap(&s), []byte("replicas: [1, 2]\n"))
	iss, ok := structmap.AsIssues(err)
	require.True(t, ok, "got %v", err)
	require.Equal(t, "/replicas", iss[0].Path)
}

func TestYAML_RoundTrip(t *testing.T) {
	src := service{Name: "db", Replicas: 2}
	out, err := codec.EncodeYAML(structmap.Wrap(&src))
	require.NoError(t, err)

	var dst service
	require.NoError(t, codec.DecodeYAML(structmap.Wrap(&dst), out))
	require.Equal(t, src, dst)
}
