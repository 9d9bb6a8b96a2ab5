//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// headlessPackages run against the recording driver and need neither cgo nor a GPU.
var headlessPackages = []string{
	"./engine/core/...",
	"./engine/containers/...",
	"./engine/math/...",
	"./engine/assets/...",
	"./engine/renderer",
	"./engine/renderer/metadata",
	"./engine/renderer/opengl",
	"./engine/renderer/opengl/gltest",
}

// All runs every test, including the glfw and vulkan packages.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Headless runs the tests that work on a machine without a display.
func (Test) Headless() error {
	mg.Deps(Build.Headless)
	_, err := executeCmd("go", withArgs(append([]string{"test"}, headlessPackages...)...), withEnv("CGO_ENABLED=0"), withStream())
	return err
}
