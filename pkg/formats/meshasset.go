// Mesh asset format: a protobuf-wire message holding one mesh.
//
//	message MeshAsset {
//	  uint32 version = 1;
//	  string name = 2;
//	  repeated float positions = 3 [packed]; // xyz
//	  repeated float normals = 4 [packed];   // xyz
//	  repeated float uv = 5 [packed];        // uv
//	  repeated float uv2 = 6 [packed];       // uv
//	  repeated Submesh submeshes = 7;
//	}
//	message Submesh {
//	  repeated uint32 indices = 1 [packed];
//	}
package formats

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// MeshAssetVersion is the current mesh asset format version.
const MeshAssetVersion = 1

// Mesh asset format errors.
var (
	ErrMalformedMeshAsset          = errors.New("malformed mesh asset")
	ErrUnsupportedMeshAssetVersion = errors.New("unsupported mesh asset version")
)

const (
	meshFieldVersion   protowire.Number = 1
	meshFieldName      protowire.Number = 2
	meshFieldPositions protowire.Number = 3
	meshFieldNormals   protowire.Number = 4
	meshFieldUV        protowire.Number = 5
	meshFieldUV2       protowire.Number = 6
	meshFieldSubmesh   protowire.Number = 7

	submeshFieldIndices protowire.Number = 1
)

// MeshAsset is the stored form of a mesh. Vector streams are flattened.
type MeshAsset struct {
	Version   uint32
	Name      string
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	UV        []float32 // 2 per vertex
	UV2       []float32 // 2 per vertex
	Submeshes [][]uint32
}

// VertexCount returns the number of vertices.
func (a *MeshAsset) VertexCount() int {
	return len(a.Positions) / 3
}

// Marshal encodes the asset. Version 0 is written as MeshAssetVersion.
func (a *MeshAsset) Marshal() []byte {
	version := a.Version
	if version == 0 {
		version = MeshAssetVersion
	}

	var b []byte
	b = protowire.AppendTag(b, meshFieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(version))
	if a.Name != "" {
		b = protowire.AppendTag(b, meshFieldName, protowire.BytesType)
		b = protowire.AppendString(b, a.Name)
	}
	b = appendPackedFloats(b, meshFieldPositions, a.Positions)
	b = appendPackedFloats(b, meshFieldNormals, a.Normals)
	b = appendPackedFloats(b, meshFieldUV, a.UV)
	b = appendPackedFloats(b, meshFieldUV2, a.UV2)

	for _, indices := range a.Submeshes {
		var sub []byte
		if len(indices) > 0 {
			var packed []byte
			for _, idx := range indices {
				packed = protowire.AppendVarint(packed, uint64(idx))
			}
			sub = protowire.AppendTag(sub, submeshFieldIndices, protowire.BytesType)
			sub = protowire.AppendBytes(sub, packed)
		}
		b = protowire.AppendTag(b, meshFieldSubmesh, protowire.BytesType)
		b = protowire.AppendBytes(b, sub)
	}
	return b
}

// ParseMeshAsset decodes a mesh asset. Unknown fields are skipped.
func ParseMeshAsset(data []byte) (*MeshAsset, error) {
	a := &MeshAsset{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == meshFieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: version: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
			}
			a.Version = uint32(v)
			data = data[n:]

		case num == meshFieldName && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: name: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
			}
			a.Name = s
			data = data[n:]

		case num >= meshFieldPositions && num <= meshFieldUV2 && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedMeshAsset, num, protowire.ParseError(n))
			}
			floats, err := parsePackedFloats(raw)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", num, err)
			}
			switch num {
			case meshFieldPositions:
				a.Positions = append(a.Positions, floats...)
			case meshFieldNormals:
				a.Normals = append(a.Normals, floats...)
			case meshFieldUV:
				a.UV = append(a.UV, floats...)
			case meshFieldUV2:
				a.UV2 = append(a.UV2, floats...)
			}
			data = data[n:]

		case num == meshFieldSubmesh && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: submesh: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
			}
			indices, err := parseSubmesh(raw)
			if err != nil {
				return nil, fmt.Errorf("submesh %d: %w", len(a.Submeshes), err)
			}
			a.Submeshes = append(a.Submeshes, indices)
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedMeshAsset, num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if a.Version != MeshAssetVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMeshAssetVersion, a.Version)
	}
	if len(a.Positions)%3 != 0 || len(a.Normals)%3 != 0 || len(a.UV)%2 != 0 || len(a.UV2)%2 != 0 {
		return nil, fmt.Errorf("%w: partial vector in attribute stream", ErrMalformedMeshAsset)
	}
	return a, nil
}

func appendPackedFloats(b []byte, num protowire.Number, v []float32) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(len(v)*4))
	for _, f := range v {
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	}
	return b
}

func parsePackedFloats(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: packed float length %d", ErrMalformedMeshAsset, len(raw))
	}
	out := make([]float32, 0, len(raw)/4)
	for len(raw) > 0 {
		v, n := protowire.ConsumeFixed32(raw)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
		}
		out = append(out, math.Float32frombits(v))
		raw = raw[n:]
	}
	return out, nil
}

func parseSubmesh(data []byte) ([]uint32, error) {
	var out []uint32
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
		}
		data = data[n:]

		if num != submeshFieldIndices || typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		packed, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
		}
		data = data[n:]
		for len(packed) > 0 {
			v, n := protowire.ConsumeVarint(packed)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMeshAsset, protowire.ParseError(n))
			}
			if v > math.MaxUint32 {
				return nil, fmt.Errorf("%w: index %d overflows uint32", ErrMalformedMeshAsset, v)
			}
			out = append(out, uint32(v))
			packed = packed[n:]
		}
	}
	return out, nil
}
