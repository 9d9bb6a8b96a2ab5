package metadata

type BufferUsage int

const (
	/** @brief Uploaded once, drawn many times. */
	BufferUsageStatic BufferUsage = iota
	/** @brief Updated often, drawn many times. */
	BufferUsageDynamic
	/** @brief Updated every frame, drawn a few times. */
	BufferUsageStream
)

type VertexAttributeType int

const (
	VertexAttributeFloat32 VertexAttributeType = iota
	VertexAttributeInt32
	VertexAttributeUint8
)

// Size returns the width of one component in bytes.
func (t VertexAttributeType) Size() int {
	switch t {
	case VertexAttributeUint8:
		return 1
	default:
		return 4
	}
}

// VertexAttribute describes one attribute of an interleaved vertex.
type VertexAttribute struct {
	// Location is the shader attribute location.
	Location   uint32
	Components int32
	Type       VertexAttributeType
	Normalized bool
	// Offset in bytes from the start of the vertex.
	Offset int
}

// VertexLayout describes an interleaved vertex buffer.
type VertexLayout struct {
	// Stride in bytes. Computed from the attributes when 0.
	Stride     int32
	Attributes []VertexAttribute
}

// EffectiveStride returns Stride, or the packed size of all attributes if Stride is 0.
func (l VertexLayout) EffectiveStride() int32 {
	if l.Stride != 0 {
		return l.Stride
	}
	var end int
	for _, a := range l.Attributes {
		if e := a.Offset + int(a.Components)*a.Type.Size(); e > end {
			end = e
		}
	}
	return int32(end)
}
