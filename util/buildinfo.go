package util

import (
	"runtime/debug"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	GoVersion string `json:"goVersion"`
}

// ShortRevision returns the first 7 characters of the vcs revision
func (b BuildInfo) ShortRevision() string {
	if len(b.Revision) < 7 {
		return b.Revision
	}
	return b.Revision[:7]
}

// String is version-shortrevision, or just the version when no revision was stamped
func (b BuildInfo) String() string {
	if b.Revision == "" || b.Revision == "unknown" {
		return b.Version
	}
	return b.Version + "-" + b.ShortRevision()
}

// GetBuildInfo reads the module version and vcs revision embedded by the go tool.
// version overrides the module version when set through -ldflags.
func GetBuildInfo(version string) BuildInfo {
	result := BuildInfo{
		Version:   "unknown",
		Revision:  "unknown",
		GoVersion: "unknown",
	}

	info, available := debug.ReadBuildInfo()
	if available {
		result.GoVersion = info.GoVersion
		if info.Main.Version != "" {
			result.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				result.Revision = setting.Value
				break
			}
		}
	}

	if version != "" && version != "unknown" {
		result.Version = version
	}

	return result
}
