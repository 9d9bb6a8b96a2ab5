package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusStopsAtFirstHandler(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	first := func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls = append(calls, listener.(string))
		return data.Data.U32[0] == 1
	}

	assert.True(t, bus.Register(EVENT_CODE_RESIZED, "a", first))
	assert.True(t, bus.Register(EVENT_CODE_RESIZED, "b", first))
	assert.False(t, bus.Register(EVENT_CODE_RESIZED, "a", first), "duplicate listener")

	var ctx EventContext
	ctx.Data.U32[0] = 1
	assert.True(t, bus.Fire(EVENT_CODE_RESIZED, nil, ctx))
	assert.Equal(t, []string{"a"}, calls)

	calls = nil
	ctx.Data.U32[0] = 0
	assert.False(t, bus.Fire(EVENT_CODE_RESIZED, nil, ctx))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestEventBusUnregister(t *testing.T) {
	bus := NewEventBus()
	fired := 0
	handler := func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		fired++
		return true
	}
	bus.Register(EVENT_CODE_APPLICATION_QUIT, "app", handler)
	assert.True(t, bus.Unregister(EVENT_CODE_APPLICATION_QUIT, "app"))
	assert.False(t, bus.Unregister(EVENT_CODE_APPLICATION_QUIT, "app"))
	assert.False(t, bus.Fire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}))
	assert.Zero(t, fired)
}
