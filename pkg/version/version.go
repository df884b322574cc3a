package version

// Version is the current version of seek.
const Version = "0.4.0"

// BuildVersion returns the version string for display.
func BuildVersion() string {
	return "seek version " + Version
}

// APIVersion returns the bare version number for API responses.
func APIVersion() string {
	return Version
}
