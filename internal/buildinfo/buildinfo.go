// Package buildinfo carries version metadata injected at link time via
// -ldflags "-X github.com/starascendin/lifeos-finance/internal/buildinfo.Version=...".
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
