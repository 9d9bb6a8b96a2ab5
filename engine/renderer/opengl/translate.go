package opengl

import "github.com/spaghettifunk/prism/engine/renderer/metadata"

func primitiveMode(p metadata.PrimitiveTopology) uint32 {
	switch p {
	case metadata.PrimitiveTriangleStrip:
		return TRIANGLE_STRIP
	case metadata.PrimitiveLines:
		return LINES
	case metadata.PrimitiveLineStrip:
		return LINE_STRIP
	case metadata.PrimitivePoints:
		return POINTS
	default:
		return TRIANGLES
	}
}

func indexType(t metadata.IndexType) uint32 {
	if t == metadata.IndexTypeUint16 {
		return UNSIGNED_SHORT
	}
	return UNSIGNED_INT
}

func blendFactor(f metadata.BlendFactor) uint32 {
	switch f {
	case metadata.BlendFactorSrcAlpha:
		return SRC_ALPHA
	case metadata.BlendFactorOneMinusSrcAlpha:
		return ONE_MINUS_SRC_ALPHA
	case metadata.BlendFactorOne:
		return ONE
	case metadata.BlendFactorDstColor:
		return DST_COLOR
	default:
		return ZERO
	}
}

func cullFace(m metadata.FaceCullMode) uint32 {
	switch m {
	case metadata.FaceCullModeFront:
		return FRONT
	case metadata.FaceCullModeFrontAndBack:
		return FRONT_AND_BACK
	default:
		return BACK
	}
}

func clearMask(flags metadata.ClearFlag) uint32 {
	var mask uint32
	if flags&metadata.ClearColourBuffer != 0 {
		mask |= COLOR_BUFFER_BIT
	}
	if flags&metadata.ClearDepthBuffer != 0 {
		mask |= DEPTH_BUFFER_BIT
	}
	if flags&metadata.ClearStencilBuffer != 0 {
		mask |= STENCIL_BUFFER_BIT
	}
	return mask
}

func bufferUsage(u metadata.BufferUsage) uint32 {
	switch u {
	case metadata.BufferUsageDynamic:
		return DYNAMIC_DRAW
	case metadata.BufferUsageStream:
		return STREAM_DRAW
	default:
		return STATIC_DRAW
	}
}

func attributeType(t metadata.VertexAttributeType) uint32 {
	switch t {
	case metadata.VertexAttributeInt32:
		return INT
	case metadata.VertexAttributeUint8:
		return UNSIGNED_BYTE
	default:
		return FLOAT
	}
}

// textureFormat returns the internal format, pixel format and component type of f.
func textureFormat(f metadata.TextureFormat) (internal int32, format, xtype uint32) {
	switch f {
	case metadata.TextureFormatRGB8:
		return RGB8, RGB, UNSIGNED_BYTE
	case metadata.TextureFormatR8:
		return R8, RED, UNSIGNED_BYTE
	case metadata.TextureFormatRGBA16F:
		return RGBA16F, RGBA, HALF_FLOAT
	case metadata.TextureFormatDepth24:
		return DEPTH_COMPONENT24, DEPTH_COMPONENT, UNSIGNED_INT
	case metadata.TextureFormatDepth32F:
		return DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT
	default:
		return RGBA8, RGBA, UNSIGNED_BYTE
	}
}

func textureRepeat(r metadata.TextureRepeat) int32 {
	switch r {
	case metadata.TextureRepeatMirroredRepeat:
		return MIRRORED_REPEAT
	case metadata.TextureRepeatClampToEdge:
		return CLAMP_TO_EDGE
	case metadata.TextureRepeatClampToBorder:
		return CLAMP_TO_BORDER
	default:
		return REPEAT
	}
}

func minFilter(f metadata.TextureFilter, mipmapped bool) int32 {
	switch {
	case f == metadata.TextureFilterModeNearest && mipmapped:
		return NEAREST_MIPMAP_NEAREST
	case f == metadata.TextureFilterModeNearest:
		return NEAREST
	case mipmapped:
		return LINEAR_MIPMAP_LINEAR
	default:
		return LINEAR
	}
}

func magFilter(f metadata.TextureFilter) int32 {
	if f == metadata.TextureFilterModeNearest {
		return NEAREST
	}
	return LINEAR
}
