// Package version provides build version information for topic-console.
package version

// These variables are set via ldflags during build
//
//nolint:gochecknoglobals // These are intentionally global for ldflags injection
var (
	version = "dev"
	buildID = "dev"
)

const productName = "topic-console"

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// GetFullVersion returns version with build ID
func GetFullVersion() string {
	return version + " (build: " + buildID + ")"
}

// UserAgent is sent with every request to the configuration server.
func UserAgent() string {
	return productName + "/" + version
}
