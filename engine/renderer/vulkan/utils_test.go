package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "\x00", safeString(""))
	assert.Equal(t, "prism\x00", safeString("prism"))
	assert.Equal(t, "prism\x00", safeString("prism\x00"))

	in := []string{"a", "b\x00"}
	assert.Equal(t, []string{"a\x00", "b\x00"}, safeStrings(in))
	assert.Equal(t, "a", in[0], "input is left alone")
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "VK_SUCCESS", resultString(vk.Success))
	assert.Equal(t, "VK_ERROR_INCOMPATIBLE_DRIVER", resultString(vk.ErrorIncompatibleDriver))
	assert.Equal(t, "VkResult(-1000001004)", resultString(vk.Result(-1000001004)))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1.3.250", versionString(uint32(vk.MakeVersion(1, 3, 250))))
	assert.Equal(t, "discrete", deviceType(vk.PhysicalDeviceTypeDiscreteGpu))
}
