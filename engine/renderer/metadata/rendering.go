package metadata

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

/** @brief The primitive topology used by a draw. */
type PrimitiveTopology int

const (
	PrimitiveTriangles PrimitiveTopology = iota
	PrimitiveTriangleStrip
	PrimitiveLines
	PrimitiveLineStrip
	PrimitivePoints
)

func (p PrimitiveTopology) String() string {
	switch p {
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveTriangleStrip:
		return "triangle_strip"
	case PrimitiveLines:
		return "lines"
	case PrimitiveLineStrip:
		return "line_strip"
	case PrimitivePoints:
		return "points"
	}
	return "unknown"
}

/** @brief Width of the elements stored in an index buffer. */
type IndexType int

const (
	IndexTypeUint32 IndexType = iota
	IndexTypeUint16
)

// Size returns the width of one index in bytes.
func (t IndexType) Size() int {
	if t == IndexTypeUint16 {
		return 2
	}
	return 4
}

type BlendFactor int

const (
	BlendFactorSrcAlpha BlendFactor = iota
	BlendFactorOneMinusSrcAlpha
	BlendFactorOne
	BlendFactorZero
	BlendFactorDstColor
)

/**
 * @brief The types of clearing to be done on a framebuffer.
 * Can be combined together for multiple clearing functions.
 */
type ClearFlag uint32

const (
	/** @brief No clearing should be done. */
	ClearNone ClearFlag = 0x0
	/** @brief Clear the colour buffer. */
	ClearColourBuffer ClearFlag = 0x1
	/** @brief Clear the depth buffer. */
	ClearDepthBuffer ClearFlag = 0x2
	/** @brief Clear the stencil buffer. */
	ClearStencilBuffer ClearFlag = 0x4
)

// Rect is a pixel rectangle with its origin at the bottom left corner.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Colour is a linear RGBA colour.
type Colour struct {
	R, G, B, A float32
}
