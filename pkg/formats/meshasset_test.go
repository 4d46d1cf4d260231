package formats

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"
)

func sampleMeshAsset() *MeshAsset {
	return &MeshAsset{
		Version:   MeshAssetVersion,
		Name:      "Root_combined",
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0},
		Normals:   []float32{0, 0, -1, 0, 0, -1, 0, 0, -1, 0, 0, -1},
		UV:        []float32{0, 0, 1, 0, 0, 1, 1, 1},
		Submeshes: [][]uint32{{0, 2, 1}, {}, {1, 2, 3}},
	}
}

func TestMeshAsset_RoundTrip(t *testing.T) {
	want := sampleMeshAsset()
	got, err := ParseMeshAsset(want.Marshal())
	if err != nil {
		t.Fatalf("ParseMeshAsset: %v", err)
	}

	// Empty submeshes decode as nil.
	want.Submeshes[1] = nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", got.VertexCount())
	}
}

func TestMeshAsset_DefaultVersion(t *testing.T) {
	a := sampleMeshAsset()
	a.Version = 0
	got, err := ParseMeshAsset(a.Marshal())
	if err != nil {
		t.Fatalf("ParseMeshAsset: %v", err)
	}
	if got.Version != MeshAssetVersion {
		t.Errorf("Version = %d, want %d", got.Version, MeshAssetVersion)
	}
}

func TestMeshAsset_PreservesNonFinite(t *testing.T) {
	a := &MeshAsset{Positions: []float32{float32(math.Inf(1)), 0, -0}}
	got, err := ParseMeshAsset(a.Marshal())
	if err != nil {
		t.Fatalf("ParseMeshAsset: %v", err)
	}
	if !math.IsInf(float64(got.Positions[0]), 1) {
		t.Errorf("Positions[0] = %v, want +Inf", got.Positions[0])
	}
}

func TestMeshAsset_SkipsUnknownFields(t *testing.T) {
	data := sampleMeshAsset().Marshal()
	data = protowire.AppendTag(data, 99, protowire.VarintType)
	data = protowire.AppendVarint(data, 12345)
	data = protowire.AppendTag(data, 100, protowire.BytesType)
	data = protowire.AppendString(data, "future")

	got, err := ParseMeshAsset(data)
	if err != nil {
		t.Fatalf("ParseMeshAsset: %v", err)
	}
	if got.Name != "Root_combined" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestParseMeshAsset_Errors(t *testing.T) {
	withVersion := func(v uint64) []byte {
		b := protowire.AppendTag(nil, meshFieldVersion, protowire.VarintType)
		return protowire.AppendVarint(b, v)
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "empty data",
			data:    []byte{},
			wantErr: ErrUnsupportedMeshAssetVersion,
		},
		{
			name:    "future version",
			data:    withVersion(7),
			wantErr: ErrUnsupportedMeshAssetVersion,
		},
		{
			name:    "truncated tag",
			data:    []byte{0x80},
			wantErr: ErrMalformedMeshAsset,
		},
		{
			name: "truncated bytes field",
			data: func() []byte {
				b := withVersion(1)
				b = protowire.AppendTag(b, meshFieldPositions, protowire.BytesType)
				return protowire.AppendVarint(b, 12)
			}(),
			wantErr: ErrMalformedMeshAsset,
		},
		{
			name: "packed floats not aligned",
			data: func() []byte {
				b := withVersion(1)
				b = protowire.AppendTag(b, meshFieldPositions, protowire.BytesType)
				return protowire.AppendBytes(b, []byte{1, 2, 3})
			}(),
			wantErr: ErrMalformedMeshAsset,
		},
		{
			name:    "partial position vector",
			data:    (&MeshAsset{Positions: []float32{1, 2}}).Marshal(),
			wantErr: ErrMalformedMeshAsset,
		},
		{
			name: "index overflows uint32",
			data: func() []byte {
				b := withVersion(1)
				sub := protowire.AppendTag(nil, submeshFieldIndices, protowire.BytesType)
				sub = protowire.AppendBytes(sub, protowire.AppendVarint(nil, 1<<40))
				b = protowire.AppendTag(b, meshFieldSubmesh, protowire.BytesType)
				return protowire.AppendBytes(b, sub)
			}(),
			wantErr: ErrMalformedMeshAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMeshAsset(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseMeshAsset() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
