package installer

import (
	"os"
	"runtime"
	"strings"
)

// Platform is the OS family install commands are chosen by.
type Platform string

const (
	PlatformDarwin  Platform = "darwin"
	PlatformDebian  Platform = "debian"
	PlatformRHEL    Platform = "rhel"
	PlatformUnknown Platform = "unknown"
)

const osReleasePath = "/etc/os-release"

// Detect determines the platform of the current host.
func Detect() Platform {
	if runtime.GOOS == "darwin" {
		return PlatformDarwin
	}

	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return PlatformUnknown
	}

	return detectFromOSRelease(string(data))
}

// detectFromOSRelease classifies a distro from os-release content, using
// ID first and ID_LIKE as fallback.
func detectFromOSRelease(content string) Platform {
	fields := parseOSRelease(content)

	ids := []string{fields["ID"]}
	ids = append(ids, strings.Fields(fields["ID_LIKE"])...)

	for _, id := range ids {
		switch id {
		case "debian", "ubuntu":
			return PlatformDebian
		case "rhel", "centos", "fedora", "amzn", "rocky", "almalinux":
			return PlatformRHEL
		}
	}

	return PlatformUnknown
}

func parseOSRelease(content string) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		fields[key] = strings.Trim(value, `"`)
	}

	return fields
}
