// Package buildinfo holds version information injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/watchfire-io/autodeploy/internal/buildinfo.Version=1.0.0"
package buildinfo

var (
	Version    = "dev"
	Codename   = "unreleased"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Short returns "Version (Codename)", or just the version for dev builds.
func Short() string {
	if Codename == "" || Codename == "unreleased" {
		return Version
	}
	return Version + " (" + Codename + ")"
}
