//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Validates the shaders and runs the testbed.
func (Run) Engine() error {
	if err := validateShaders(); err != nil {
		return err
	}
	fmt.Println("Run engine...")
	return goTool(debugConfig, "run", ".")
}

// Runs the unit tests in debug and release configurations.
func (Run) Tests() error {
	for _, cfg := range []buildConfig{debugConfig, releaseConfig} {
		if err := goTool(cfg, "test", "./..."); err != nil {
			return err
		}
	}
	return nil
}
