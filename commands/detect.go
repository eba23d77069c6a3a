package commands

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/darkace1998/vkconform/internal/oracle"
)

// Detect enumerates Vulkan devices and prints the per-usage sample-count
// limits of the selected one.
func Detect(args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	device := fs.String("device", "auto", "Preferred device name")
	_ = fs.Parse(args)

	fmt.Println("Vulkan Device Detection")
	fmt.Println("")

	devices, err := oracle.EnumerateDevices()
	if err != nil {
		slog.Error("Failed to enumerate devices", "error", err)
		os.Exit(1)
	}

	if len(devices) == 0 {
		fmt.Println("Vulkan Status: not available")
		fmt.Println("")
		fmt.Println("To enable Vulkan support:")
		fmt.Println("  - Install GPU drivers with Vulkan support")
		fmt.Println("  - Rebuild with: go build -tags vulkan")
	} else {
		fmt.Println("Devices:")
		for _, dev := range devices {
			marker := " "
			if dev.Available {
				marker = "*"
			}
			fmt.Printf("%s %s (%s, driver %s)\n", marker, dev.Name, dev.Type, dev.DriverVersion)
		}
		displayLimits(*device)
	}

	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Printf("  OS: %s\n", runtime.GOOS)
	fmt.Printf("  Architecture: %s\n", runtime.GOARCH)
}

func displayLimits(preferred string) {
	vk, err := oracle.Open(oracle.Options{PreferredDevice: preferred})
	if err != nil {
		slog.Warn("Could not open a device to query limits", "error", err)
		return
	}
	defer vk.Close()

	limits, err := vk.Limits()
	if err != nil {
		slog.Warn("Could not query device limits", "error", err)
		return
	}

	fmt.Println("")
	fmt.Printf("Sample-count limits of %s:\n", vk.DeviceName())
	fmt.Printf("  framebufferColorSampleCounts:        %s\n", limits.FramebufferColorSampleCounts)
	fmt.Printf("  framebufferIntegerColorSampleCounts: %s\n", limits.FramebufferIntegerColorSampleCounts)
	fmt.Printf("  framebufferDepthSampleCounts:        %s\n", limits.FramebufferDepthSampleCounts)
	fmt.Printf("  framebufferStencilSampleCounts:      %s\n", limits.FramebufferStencilSampleCounts)
	fmt.Printf("  sampledImageColorSampleCounts:       %s\n", limits.SampledImageColorSampleCounts)
	fmt.Printf("  sampledImageDepthSampleCounts:       %s\n", limits.SampledImageDepthSampleCounts)
	fmt.Printf("  sampledImageIntegerSampleCounts:     %s\n", limits.SampledImageIntegerSampleCounts)
	fmt.Printf("  storageImageSampleCounts:            %s\n", limits.StorageImageSampleCounts)
}
