package opengl

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spaghettifunk/prism/engine/containers"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// maxErrorsPerCheck bounds the glGetError drain so a lost context cannot spin forever.
const maxErrorsPerCheck = 8

type bufferInfo struct {
	kind  metadata.ResourceKind
	size  int
	usage uint32
	label string
}

type vertexArrayInfo struct {
	vertexBuffer uint32
	indexBuffer  uint32
	label        string
}

type shaderInfo struct {
	uniforms map[string]int32
	label    string
}

type textureInfo struct {
	target uint32
	config metadata.TextureConfig
	// framebuffer owning this attachment, 0 for standalone textures
	owner uint32
}

type framebufferInfo struct {
	colour []uint32
	depth  uint32
	width  uint32
	height uint32
	label  string
}

// recording is the command store entry of one command buffer.
type recording struct {
	commands  []metadata.Command
	recording bool
}

// Backend is the OpenGL implementation of the renderer backend. It owns every GL
// object it creates, the recorded command lists and the submission queue.
type Backend struct {
	driver      Driver
	checkErrors bool

	// window framebuffer size, 0 while unknown
	width  int32
	height int32

	buffers      map[uint32]*bufferInfo
	vertexArrays map[uint32]*vertexArrayInfo
	shaders      map[uint32]*shaderInfo
	textures     map[uint32]*textureInfo
	framebuffers map[uint32]*framebufferInfo

	commandBufferIDs *core.IDPool
	recordings       map[uint32]*recording
	queue            *containers.RingQueue[uint32]

	exec        *executor
	frameNumber uint64
	stats       metadata.FrameStats
}

type Option func(*Backend)

// WithErrorChecks polls glGetError after shader binds, vertex array binds and draws.
func WithErrorChecks(enabled bool) Option {
	return func(b *Backend) {
		b.checkErrors = enabled
	}
}

func New(driver Driver, options ...Option) *Backend {
	b := &Backend{
		driver:           driver,
		buffers:          make(map[uint32]*bufferInfo),
		vertexArrays:     make(map[uint32]*vertexArrayInfo),
		shaders:          make(map[uint32]*shaderInfo),
		textures:         make(map[uint32]*textureInfo),
		framebuffers:     make(map[uint32]*framebufferInfo),
		commandBufferIDs: core.NewIDPool(),
		recordings:       make(map[uint32]*recording),
		queue:            containers.NewGrowableRingQueue[uint32](16),
	}
	b.exec = newExecutor(b)
	for _, o := range options {
		o(b)
	}
	return b
}

func (b *Backend) API() metadata.GraphicsAPI {
	return metadata.OpenGL
}

func (b *Backend) Initialize(width, height int) error {
	b.width = int32(width)
	b.height = int32(height)
	core.LogInfo("OpenGL backend initialized: %s, %s (%dx%d)", b.driver.GetString(VERSION), b.driver.GetString(RENDERER), width, height)
	b.restoreViewport()
	return nil
}

// Shutdown reports every object the caller never released, then deletes them.
func (b *Backend) Shutdown() error {
	for _, r := range b.LiveResources() {
		core.LogWarn("leaked %s %q (id %d)", r.Kind, r.Label, r.ID)
	}
	for id := range b.framebuffers {
		b.DestroyFramebuffer(id)
	}
	for id := range b.vertexArrays {
		b.DestroyVertexArray(id)
	}
	for id := range b.buffers {
		b.DestroyBuffer(id)
	}
	for id := range b.shaders {
		b.DestroyShader(id)
	}
	for id := range b.textures {
		b.DestroyTexture(id)
	}
	for _, id := range b.commandBufferIDs.InUse() {
		b.DestroyCommandBuffer(id)
	}
	b.queue.Clear()
	core.LogInfo("OpenGL backend shut down.")
	return nil
}

func (b *Backend) Resized(width, height int) {
	b.width = int32(width)
	b.height = int32(height)
	core.LogDebug("OpenGL backend resized: %dx%d", width, height)
}

// LiveResources lists every object created and not yet destroyed, ordered by kind and id.
func (b *Backend) LiveResources() []metadata.ResourceInfo {
	var out []metadata.ResourceInfo
	for id, info := range b.buffers {
		out = append(out, metadata.ResourceInfo{Kind: info.kind, ID: id, Label: info.label})
	}
	for id, info := range b.vertexArrays {
		out = append(out, metadata.ResourceInfo{Kind: metadata.ResourceVertexArray, ID: id, Label: info.label})
	}
	for id, info := range b.shaders {
		out = append(out, metadata.ResourceInfo{Kind: metadata.ResourceShader, ID: id, Label: info.label})
	}
	for id, info := range b.textures {
		// attachments go away with their framebuffer
		if info.owner != 0 {
			continue
		}
		out = append(out, metadata.ResourceInfo{Kind: metadata.ResourceTexture, ID: id, Label: info.config.Name})
	}
	for id, info := range b.framebuffers {
		out = append(out, metadata.ResourceInfo{Kind: metadata.ResourceFramebuffer, ID: id, Label: info.label})
	}
	for _, id := range b.commandBufferIDs.InUse() {
		out = append(out, metadata.ResourceInfo{Kind: metadata.ResourceCommandBuffer, ID: id, Label: fmt.Sprintf("command_buffer-%d", id)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BeginFrame drops the submission queue and every recorded command list.
// Command buffer ids stay allocated; a buffer has to Begin again to record.
func (b *Backend) BeginFrame() {
	b.frameNumber++
	b.queue.Clear()
	clear(b.recordings)
}

// EndFrame executes the submitted buffers in submission order. After each buffer the
// draw target, vertex array, program, scissor, blend and viewport are reset so the
// next buffer starts from a known state.
func (b *Backend) EndFrame() {
	b.stats = metadata.FrameStats{Frame: b.frameNumber}
	for !b.queue.IsEmpty() {
		id, err := b.queue.Dequeue()
		if err != nil {
			break
		}
		if rec, ok := b.recordings[id]; ok {
			if rec.recording {
				core.LogDebug("command buffer %d executed while still recording", id)
			}
			commands := rec.commands
			b.exec.run(commands)
			b.stats.CommandBuffers++
			b.stats.Commands += len(commands)
		}
		b.resetState()
	}
	b.restoreViewport()
}

// Flush ends the current frame, waits for the driver to finish all work and opens a new frame.
func (b *Backend) Flush() {
	b.EndFrame()
	b.driver.Finish()
	b.BeginFrame()
}

func (b *Backend) FrameNumber() uint64 {
	return b.frameNumber
}

func (b *Backend) Stats() metadata.FrameStats {
	return b.stats
}

func (b *Backend) resetState() {
	b.driver.BindFramebuffer(FRAMEBUFFER, 0)
	b.driver.BindVertexArray(0)
	b.driver.UseProgram(0)
	b.driver.Disable(SCISSOR_TEST)
	b.driver.Disable(BLEND)
	b.restoreViewport()
	b.exec.reset()
}

func (b *Backend) restoreViewport() {
	if b.width > 0 && b.height > 0 {
		b.driver.Viewport(0, 0, b.width, b.height)
	}
}

func (b *Backend) checkError(op string) {
	if !b.checkErrors {
		return
	}
	for i := 0; i < maxErrorsPerCheck; i++ {
		code := b.driver.GetError()
		if code == NO_ERROR {
			return
		}
		b.stats.DriverErrors++
		core.LogError("OpenGL error after %s: %s (0x%04X)", op, ErrorString(code), code)
	}
}

func label(kind metadata.ResourceKind, name string) string {
	if name != "" {
		return name
	}
	return kind.String() + "-" + uuid.NewString()
}

func (b *Backend) CreateCommandBuffer() uint32 {
	id := b.commandBufferIDs.Acquire(metadata.ResourceCommandBuffer)
	b.recordings[id] = &recording{}
	return id
}

func (b *Backend) DestroyCommandBuffer(id uint32) {
	if err := b.commandBufferIDs.Release(id); err != nil {
		core.LogDebug(err.Error())
		return
	}
	delete(b.recordings, id)
}

// BeginCommandBuffer replaces the stored list of id and starts recording. Storage dropped
// by a frame reset is recreated. The old list is left intact because a callback may
// re-record the buffer while EndFrame is still replaying it.
func (b *Backend) BeginCommandBuffer(id uint32) {
	if _, ok := b.commandBufferIDs.Owner(id); !ok {
		return
	}
	rec, ok := b.recordings[id]
	if !ok {
		rec = &recording{}
		b.recordings[id] = rec
	}
	rec.commands = nil
	rec.recording = true
}

func (b *Backend) EndCommandBuffer(id uint32) {
	if rec, ok := b.recordings[id]; ok {
		rec.recording = false
	}
}

func (b *Backend) IsRecording(id uint32) bool {
	rec, ok := b.recordings[id]
	return ok && rec.recording
}

// RecordCommand appends cmd to the list of id. Commands arriving outside Begin/End are dropped.
func (b *Backend) RecordCommand(id uint32, cmd metadata.Command) {
	rec, ok := b.recordings[id]
	if !ok || !rec.recording || cmd == nil {
		return
	}
	rec.commands = append(rec.commands, cmd)
}

// Commands returns a copy of the list currently stored for id.
func (b *Backend) Commands(id uint32) []metadata.Command {
	rec, ok := b.recordings[id]
	if !ok || len(rec.commands) == 0 {
		return nil
	}
	out := make([]metadata.Command, len(rec.commands))
	copy(out, rec.commands)
	return out
}

// SubmitCommandBuffer queues id for execution at EndFrame. Nothing runs now.
func (b *Backend) SubmitCommandBuffer(id uint32) {
	if _, ok := b.commandBufferIDs.Owner(id); !ok {
		return
	}
	// growable queues never fail
	_ = b.queue.Enqueue(id)
}

// Pending is the number of submissions waiting for EndFrame.
func (b *Backend) Pending() int {
	return b.queue.Len()
}
