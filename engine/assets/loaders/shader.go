package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ShaderSource is a GLSL program read from <name>.vert and <name>.frag.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
}

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(dir, name string) (*ShaderSource, error) {
	vertex, err := readStage(filepath.Join(dir, name+".vert"))
	if err != nil {
		return nil, err
	}
	fragment, err := readStage(filepath.Join(dir, name+".frag"))
	if err != nil {
		return nil, err
	}
	return &ShaderSource{
		Name:     name,
		Vertex:   vertex,
		Fragment: fragment,
	}, nil
}

func readStage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	src := string(data)
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("shader stage %s is empty", path)
	}
	return src, nil
}
