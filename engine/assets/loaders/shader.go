package loaders

import (
	"fmt"
	"os"
	"strings"
)

type ShaderLoader struct{}

// Load reads a GLSL source file and returns it as a string.
func (sl *ShaderLoader) Load(path string) (any, error) {
	return LoadShaderSource(path)
}

func LoadShaderSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("shader %s: %w", path, ErrEmptyAsset)
	}
	return string(data), nil
}
