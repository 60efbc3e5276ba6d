package sessionlog

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"
)

// CollectMetadata gathers the header fields from the running process and the
// OS: executable path, current user, hostname, OS description, and
// architecture. Values come from the OS, never from configuration.
func CollectMetadata() (Metadata, error) {
	exe, err := os.Executable()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to resolve executable path: %w", err)
	}

	u, err := user.Current()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to resolve current user: %w", err)
	}

	host, err := os.Hostname()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to resolve hostname: %w", err)
	}

	return Metadata{
		ScriptPath: exe,
		User:       u.Username,
		Host:       host,
		OSInfo:     osDescription(),
		Arch:       runtime.GOARCH,
	}, nil
}

// osDescription returns a human-readable OS name. On Linux the distribution
// name from os-release is preferred; elsewhere (and as fallback) the GOOS
// value is used.
func osDescription() string {
	if runtime.GOOS == "linux" {
		if name := osReleaseName("/etc/os-release"); name != "" {
			return name
		}
	}
	return runtime.GOOS
}

func osReleaseName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"`)
		}
	}
	return ""
}
