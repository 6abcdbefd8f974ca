//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Validates every GLSL shader under assets/shaders with glslangValidator.
func (Build) Shaders() error {
	return validateShaders()
}

// Builds the testbed binary.
func (Build) Testbed() error {
	mg.Deps(Build.Shaders)
	return goTool(debugConfig, "build", "-o", "bin/phoenix", ".")
}

// Builds the testbed with assertions compiled out.
func (Build) Release() error {
	mg.Deps(Build.Shaders)
	return goTool(releaseConfig, "build", "-o", "bin/phoenix", ".")
}

func validateShaders() error {
	var shaders []string
	for _, pattern := range []string{"*.vert", "*.frag"} {
		matches, err := filepath.Glob(filepath.Join("assets", "shaders", pattern))
		if err != nil {
			return err
		}
		shaders = append(shaders, matches...)
	}
	if len(shaders) == 0 {
		return fmt.Errorf("no shaders found in assets/shaders")
	}
	validator, err := shaderValidator()
	if err != nil {
		return err
	}
	for _, s := range shaders {
		if err := validateShader(validator, s); err != nil {
			return err
		}
	}
	fmt.Printf("%d shaders validated\n", len(shaders))
	return nil
}
