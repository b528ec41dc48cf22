package probe

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Platform identifies the OS family, which decides the tools and parsers used.
type Platform string

const (
	// PlatformWindows uses netsh.
	PlatformWindows Platform = "windows"
	// PlatformDarwin uses the airport utility.
	PlatformDarwin Platform = "darwin"
	// PlatformLinux uses nmcli with an iwconfig fallback.
	PlatformLinux Platform = "linux"
	// PlatformUnknown has no wireless tooling support.
	PlatformUnknown Platform = "unknown"
)

// ParsePlatform maps a GOOS value onto a Platform.
func ParsePlatform(goos string) Platform {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformDarwin
	case "linux":
		return PlatformLinux
	default:
		return PlatformUnknown
	}
}

// DetectPlatform returns the platform of the running process.
func DetectPlatform() Platform {
	return ParsePlatform(runtime.GOOS)
}

// Supported reports whether wireless telemetry is implemented for p.
func (p Platform) Supported() bool {
	return p == PlatformWindows || p == PlatformDarwin || p == PlatformLinux
}

// HostInfo describes the machine for diagnostics.
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	KernelVersion   string `json:"kernelVersion"`
	Arch            string `json:"arch"`
}

// DescribeHost gathers OS details through gopsutil.
func DescribeHost(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{OS: runtime.GOOS, Arch: runtime.GOARCH}, err
	}
	return HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Arch:            info.KernelArch,
	}, nil
}
