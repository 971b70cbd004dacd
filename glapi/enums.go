package glapi

const (
	ARRAY_BUFFER                     = 0x8892
	BLEND                            = 0xbe2
	CLAMP_TO_EDGE                    = 0x812f
	COLOR_BUFFER_BIT                 = 0x4000
	COMPILE_STATUS                   = 0x8b81
	DEPTH_BUFFER_BIT                 = 0x100
	FALSE                            = 0
	FLOAT                            = 0x1406
	FRAGMENT_SHADER                  = 0x8b30
	INFO_LOG_LENGTH                  = 0x8b84
	LINEAR                           = 0x2601
	LINK_STATUS                      = 0x8b82
	MAX_COMBINED_TEXTURE_IMAGE_UNITS = 0x8b4d
	NEAREST                          = 0x2600
	ONE_MINUS_SRC_ALPHA              = 0x303
	PACK_ALIGNMENT                   = 0xd05
	RGBA                             = 0x1908
	RGBA8                            = 0x8058
	SRC_ALPHA                        = 0x302
	STATIC_DRAW                      = 0x88e4
	TEXTURE_2D                       = 0xde1
	TEXTURE_MAG_FILTER               = 0x2800
	TEXTURE_MIN_FILTER               = 0x2801
	TEXTURE_WRAP_S                   = 0x2802
	TEXTURE_WRAP_T                   = 0x2803
	TEXTURE0                         = 0x84c0
	TRIANGLES                        = 0x4
	TRUE                             = 1
	UNPACK_ALIGNMENT                 = 0xcf5
	UNSIGNED_BYTE                    = 0x1401
	UNSIGNED_INT                     = 0x1405
	VERTEX_SHADER                    = 0x8b31
	VIEWPORT                         = 0xba2
)
