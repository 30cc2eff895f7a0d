package version

// Set at build time with -ldflags "-X github.com/adaryorg/dotmix/internal/version.Version=...".
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

// String formats the build information the way --version prints it.
func String() string {
	return Version + " | " + BuildTime + " (" + CommitHash + ")"
}
