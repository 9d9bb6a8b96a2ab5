package glcore

import (
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/opengl"
)

// Importing glcore makes renderer.OpenGL available to renderer.New.
func init() {
	renderer.RegisterBackend(renderer.OpenGL, newBackend)
}

func newBackend(win renderer.Window, cfg renderer.BackendConfig) (renderer.Backend, error) {
	driver, err := New(win.ProcAddress)
	if err != nil {
		return nil, err
	}
	return opengl.New(driver, opengl.WithErrorChecks(cfg.CheckErrors)), nil
}

var (
	_ opengl.Driver    = (*Driver)(nil)
	_ renderer.Backend = (*opengl.Backend)(nil)
)
