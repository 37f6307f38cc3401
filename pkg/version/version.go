package version

// Set at build time with -ldflags "-X github.com/saboracaiteria/br.canaa/pkg/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
