//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Demo builds the testbed binary into bin/prism.
func (Build) Demo() error {
	if _, err := executeCmd("go", withArgs("mod", "download"), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/prism", "."), withStream())
	return err
}

// Headless builds only the packages that do not need cgo or a display.
func (Build) Headless() error {
	_, err := executeCmd("go", withArgs(append([]string{"build"}, headlessPackages...)...), withEnv("CGO_ENABLED=0"), withStream())
	return err
}
