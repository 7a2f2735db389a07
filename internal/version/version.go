// Package version records the build and database schema versions.
package version

// Version is the tipline release version. Overridable at build time with
// -ldflags "-X github.com/tipline/tipline/internal/version.Version=...".
var Version = "0.1.0"

// DatabaseVersion tracks the storage schema generation.
const DatabaseVersion = "1"
