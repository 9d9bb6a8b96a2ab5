package platform

import (
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBus(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, core.ErrNotInitialized)

	p, err := New(core.NewEventBus())
	require.NoError(t, err)
	assert.Nil(t, p.Window)
}

func TestResizeContext(t *testing.T) {
	ctx := resizeContext(1920, 1080)
	assert.Equal(t, uint32(1920), ctx.Data.U32[0])
	assert.Equal(t, uint32(1080), ctx.Data.U32[1])

	ctx = resizeContext(-1, 0)
	assert.Equal(t, uint32(0), ctx.Data.U32[0])
	assert.Equal(t, uint32(0), ctx.Data.U32[1])
}
