package assets

import "path/filepath"

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
	AssetTypeImage
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeShader:
		return "shader"
	case AssetTypeImage:
		return "image"
	default:
		return "none"
	}
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".vert", ".frag":
		return AssetTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return AssetTypeImage
	default:
		return AssetTypeNone
	}
}

// shaderName strips the stage extension: "lit.vert" and "lit.frag" are both "lit".
func shaderName(rel string) string {
	return rel[:len(rel)-len(filepath.Ext(rel))]
}
