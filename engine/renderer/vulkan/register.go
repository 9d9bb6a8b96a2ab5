package vulkan

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
)

func init() {
	renderer.RegisterBackend(renderer.Vulkan, newBackend)
}

// newBackend reports what the machine offers and refuses: there is no Vulkan renderer yet.
func newBackend(win renderer.Window, cfg renderer.BackendConfig) (renderer.Backend, error) {
	devices, err := Probe("prism")
	if err != nil {
		return nil, fmt.Errorf("vulkan probe: %s: %w", err, core.ErrBackendUnsupported)
	}
	for _, d := range devices {
		core.LogInfo("vulkan capable device: %s (%s, %d MiB local)", d.Name, d.Type, d.LocalMemory/1024/1024)
	}
	return nil, fmt.Errorf("vulkan: %d device(s) found, no renderer implemented: %w", len(devices), core.ErrBackendUnsupported)
}
