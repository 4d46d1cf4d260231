package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrefab_RoundTrip(t *testing.T) {
	center := [3]float32{0, 0.5, 0}
	size := [3]float32{2, 1, 2}
	want := &Prefab{
		Version: PrefabVersion,
		Name:    "Root",
		Transform: PrefabTransform{
			Position: [3]float32{1, 2, 3},
			Rotation: [4]float32{0, 0, 0, 1},
			Scale:    [3]float32{1, 1, 1},
		},
		Mesh:      "Assets/0123456789.asset",
		Materials: []string{"Stone", "Wood"},
		Components: []PrefabComponent{
			{Kind: "MeshFilter"},
			{Kind: "MeshRenderer"},
			{Kind: "BoxCollider", Center: &center, Size: &size},
			{Kind: "Rigidbody", Kinematic: true},
		},
	}

	data, err := want.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "position: [1, 2, 3]") {
		t.Errorf("expected flow-style position, got:\n%s", data)
	}

	got, err := ParsePrefab(data)
	if err != nil {
		t.Fatalf("ParsePrefab: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePrefab_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"not yaml", "name: [", ErrMalformedPrefab},
		{"missing version", "name: Root\n", ErrUnsupportedPrefabVersion},
		{"future version", "version: 2\nname: Root\n", ErrUnsupportedPrefabVersion},
		{"missing name", "version: 1\n", ErrMalformedPrefab},
		{"component without kind", "version: 1\nname: Root\ncomponents:\n  - radius: 1\n", ErrMalformedPrefab},
		{"wrong position arity", "version: 1\nname: Root\ntransform:\n  position: [1, 2]\n", ErrMalformedPrefab},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrefab([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePrefab() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
