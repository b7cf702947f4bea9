// Package version reports what build of the boundless client is running.
//
// Release builds stamp the values with the linker:
//
//	go build -ldflags "\
//	  -X github.com/rickgao/boundless-data/internal/version.Version=$(git describe --tags) \
//	  -X github.com/rickgao/boundless-data/internal/version.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/rickgao/boundless-data/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/boundless
//
// Local builds keep the placeholders below.
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown" // UTC, RFC 3339
)

// String renders the build for logs and -version, e.g.
// "1.2.0 (abc1234) built 2026-01-15T10:00:00Z".
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}

// UserAgent is sent on every outbound API request so the service can tell
// client builds apart.
func UserAgent() string {
	return "boundless-data/" + Version
}
