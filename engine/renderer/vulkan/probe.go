// Package vulkan detects Vulkan capable devices. Rendering through Vulkan is not
// implemented; selecting it fails with core.ErrBackendUnsupported after the probe.
package vulkan

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/prism/engine/core"
)

var errNoLoader = errors.New("vulkan loader not available")

// Device describes one physical device reported by the Vulkan loader.
type Device struct {
	Name          string
	Type          string
	APIVersion    string
	DriverVersion string
	// LocalMemory is the size of the device local heaps in bytes.
	LocalMemory uint64
}

// Probe creates a throwaway instance and lists the physical devices. glfw must be
// initialized.
func Probe(appName string) ([]Device, error) {
	if !glfw.VulkanSupported() {
		return nil, errNoLoader
	}
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return nil, fmt.Errorf("%w: GetInstanceProcAddress is nil", errNoLoader)
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize vk: %w", err)
	}

	createInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
			ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
			PApplicationName:   safeString(appName),
			PEngineName:        safeString("Prism"),
		},
	}
	if runtime.GOOS == "darwin" {
		extensions := safeStrings([]string{
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		})
		createInfo.Flags |= 1
		createInfo.EnabledExtensionCount = uint32(len(extensions))
		createInfo.PpEnabledExtensionNames = extensions
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return nil, fmt.Errorf("vkCreateInstance: %s", resultString(res))
	}
	defer vk.DestroyInstance(instance, nil)
	if err := vk.InitInstance(instance); err != nil {
		return nil, fmt.Errorf("failed to load instance functions: %w", err)
	}

	var count uint32
	if res := vk.EnumeratePhysicalDevices(instance, &count, nil); res != vk.Success {
		return nil, fmt.Errorf("vkEnumeratePhysicalDevices: %s", resultString(res))
	}
	if count == 0 {
		return nil, nil
	}
	physicalDevices := make([]vk.PhysicalDevice, count)
	if res := vk.EnumeratePhysicalDevices(instance, &count, physicalDevices); res != vk.Success {
		return nil, fmt.Errorf("vkEnumeratePhysicalDevices: %s", resultString(res))
	}

	devices := make([]Device, 0, count)
	for _, pd := range physicalDevices[:count] {
		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &properties)
		properties.Deref()

		var memory vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(pd, &memory)
		memory.Deref()

		d := Device{
			Name:          vk.ToString(properties.DeviceName[:]),
			Type:          deviceType(properties.DeviceType),
			APIVersion:    versionString(properties.ApiVersion),
			DriverVersion: versionString(properties.DriverVersion),
		}
		for i := 0; i < int(memory.MemoryHeapCount); i++ {
			if vk.MemoryHeapFlagBits(memory.MemoryHeaps[i].Flags)&vk.MemoryHeapDeviceLocalBit > 0 {
				d.LocalMemory += uint64(memory.MemoryHeaps[i].Size)
			}
		}
		core.LogDebug("vulkan device: %s (%s), api %s, driver %s", d.Name, d.Type, d.APIVersion, d.DriverVersion)
		devices = append(devices, d)
	}
	return devices, nil
}

func deviceType(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d",
		vk.Version.Major(vk.Version(v)),
		vk.Version.Minor(vk.Version(v)),
		vk.Version.Patch(vk.Version(v)),
	)
}
