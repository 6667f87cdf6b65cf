package buildinfo

import "time"

// Set via -ldflags at build time
var (
	BuildTime  string // when the binary was compiled
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC()

// Commit returns the commit hash, or "dev" for local builds
func Commit() string {
	if CommitHash == "" {
		return "dev"
	}
	return CommitHash
}

// Uptime returns how long the process has been running, to the second
func Uptime() time.Duration {
	return time.Since(StartTime).Truncate(time.Second)
}
