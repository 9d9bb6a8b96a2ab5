package opengl

// OpenGL enum values used by the backend. Kept here so the backend itself does not
// depend on cgo bindings; glcore passes them straight through.
const (
	FALSE = 0
	TRUE  = 1

	NO_ERROR                      = 0x0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506

	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005

	UNSIGNED_BYTE  = 0x1401
	INT            = 0x1404
	UNSIGNED_SHORT = 0x1403
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406
	HALF_FLOAT     = 0x140B

	ZERO                = 0x0
	ONE                 = 0x1
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303
	DST_COLOR           = 0x0306

	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408

	CULL_FACE    = 0x0B44
	DEPTH_TEST   = 0x0B71
	BLEND        = 0x0BE2
	SCISSOR_TEST = 0x0C11

	DEPTH_BUFFER_BIT   = 0x00000100
	STENCIL_BUFFER_BIT = 0x00000400
	COLOR_BUFFER_BIT   = 0x00004000

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	COPY_WRITE_BUFFER    = 0x8F37
	STREAM_DRAW          = 0x88E0
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8

	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30

	TEXTURE_2D                  = 0x0DE1
	TEXTURE_CUBE_MAP            = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X = 0x8515
	TEXTURE0                    = 0x84C0
	TEXTURE_MAG_FILTER          = 0x2800
	TEXTURE_MIN_FILTER          = 0x2801
	TEXTURE_WRAP_S              = 0x2802
	TEXTURE_WRAP_T              = 0x2803
	TEXTURE_WRAP_R              = 0x8072
	NEAREST                     = 0x2600
	LINEAR                      = 0x2601
	LINEAR_MIPMAP_LINEAR        = 0x2703
	NEAREST_MIPMAP_NEAREST      = 0x2700
	REPEAT                      = 0x2901
	MIRRORED_REPEAT             = 0x8370
	CLAMP_TO_EDGE               = 0x812F
	CLAMP_TO_BORDER             = 0x812D

	RED             = 0x1903
	RGB             = 0x1907
	RGBA            = 0x1908
	R8              = 0x8229
	RGB8            = 0x8051
	RGBA8           = 0x8058
	RGBA16F         = 0x881A
	DEPTH_COMPONENT = 0x1902

	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32F = 0x8CAC

	FRAMEBUFFER          = 0x8D40
	READ_FRAMEBUFFER     = 0x8CA8
	DRAW_FRAMEBUFFER     = 0x8CA9
	FRAMEBUFFER_COMPLETE = 0x8CD5
	COLOR_ATTACHMENT0    = 0x8CE0
	DEPTH_ATTACHMENT     = 0x8D00
	NONE                 = 0x0

	VENDOR   = 0x1F00
	RENDERER = 0x1F01
	VERSION  = 0x1F02
)

// ErrorString names a glGetError code for logging.
func ErrorString(code uint32) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return "GL_UNKNOWN_ERROR"
}
