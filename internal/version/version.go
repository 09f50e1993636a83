package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Name is the program name used in version output
const Name = "antiplag"

// Set with -ldflags "-X github.com/coder26-cmd/anti-plagiarism/internal/version.Version=v0.3.0" etc.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// readBuildInfo is replaced in tests
var readBuildInfo = debug.ReadBuildInfo

// Short returns the version. Binaries installed with `go install` have no
// ldflags, so the module version is used for them.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// UserAgent identifies the tool in HTTP responses and MCP handshakes
func UserAgent() string {
	return Name + "/" + strings.TrimPrefix(Short(), "v")
}

// Info returns the multi-line report printed by `antiplag version`
func Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", Name, Short())
	fmt.Fprintf(&sb, "Commit: %s\n", Commit)
	fmt.Fprintf(&sb, "Built: %s by %s\n", Date, BuiltBy)
	fmt.Fprintf(&sb, "Go: %s\n", runtime.Version())
	fmt.Fprintf(&sb, "OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH)
	return sb.String()
}
