package metadata

/** @brief Pixel layout of a texture. */
type TextureFormat int

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatRGB8
	TextureFormatR8
	TextureFormatRGBA16F
	TextureFormatDepth24
	TextureFormatDepth32F
)

// BytesPerPixel is the upload size of one pixel for the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatRGB8:
		return 3
	case TextureFormatR8:
		return 1
	case TextureFormatRGBA16F:
		return 8
	default:
		return 4
	}
}

func (f TextureFormat) IsDepth() bool {
	return f == TextureFormatDepth24 || f == TextureFormatDepth32F
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = iota
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest
)

type TextureRepeat int

const (
	TextureRepeatRepeat TextureRepeat = iota
	TextureRepeatMirroredRepeat
	TextureRepeatClampToEdge
	TextureRepeatClampToBorder
)

/**
 * @brief Describes a texture to be created by a backend.
 */
type TextureConfig struct {
	/** @brief Debug label. Generated by the backend when empty. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	Format TextureFormat
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief The repeat mode on the W axis, cube maps only. */
	RepeatW   TextureRepeat
	Mipmapped bool
}

/** @brief Order of the six faces of a cube texture. */
const (
	CubeFacePositiveX = iota
	CubeFaceNegativeX
	CubeFacePositiveY
	CubeFaceNegativeY
	CubeFacePositiveZ
	CubeFaceNegativeZ
	CubeFaceCount
)

/**
 * @brief Describes a framebuffer and the attachments the backend creates for it.
 */
type FramebufferConfig struct {
	Name   string
	Width  uint32
	Height uint32
	/** @brief Number of colour attachments, 0 for a depth only target. */
	ColourAttachments int
	ColourFormat      TextureFormat
	/** @brief Create a depth texture attachment. */
	Depth bool
}
