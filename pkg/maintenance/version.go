package maintenance

import "runtime/debug"

// Version is overridden at build time with -ldflags.
var Version = "dev"

// VersionInfo is the payload of the system version endpoint.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
}

// CurrentVersion collects the build information of the running binary.
func CurrentVersion() VersionInfo {
	info := VersionInfo{Version: Version}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = build.GoVersion

	for _, setting := range build.Settings {
		if setting.Key == "vcs.revision" {
			info.Revision = setting.Value
		}
	}

	return info
}
