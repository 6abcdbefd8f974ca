//go:build mage

package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// buildConfig selects whether engine assertions are compiled in.
type buildConfig int

const (
	debugConfig buildConfig = iota
	releaseConfig
)

func (c buildConfig) flags() []string {
	if c == releaseConfig {
		return []string{"-tags", "release"}
	}
	return nil
}

// glfw and the GL loader are cgo packages.
var goEnv = map[string]string{"CGO_ENABLED": "1"}

// goTool runs a go subcommand for cfg and streams its output.
func goTool(cfg buildConfig, sub string, args ...string) error {
	full := append([]string{sub}, cfg.flags()...)
	full = append(full, args...)
	fmt.Printf("go %s\n", strings.Join(full, " "))
	if err := sh.RunWithV(goEnv, "go", full...); err != nil {
		return fmt.Errorf("go %s: %w", sub, err)
	}
	return nil
}

func shaderValidator() (string, error) {
	path, err := exec.LookPath("glslangValidator")
	if err != nil {
		return "", fmt.Errorf("glslangValidator not found on PATH, install glslang: %w", err)
	}
	return path, nil
}

// validateShader prints the validator report only when it fails or mage runs verbose.
func validateShader(validator, path string) error {
	out, err := sh.Output(validator, path)
	if err != nil {
		return fmt.Errorf("shader %s:\n%s\n%w", path, out, err)
	}
	if mg.Verbose() {
		fmt.Println(out)
	}
	return nil
}
