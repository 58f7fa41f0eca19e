package cli

// Version is the CLI's semantic version string, formatted by pkg/semver
// and compared against GitHub releases by CheckForUpdates. Overridden at
// build time via -ldflags "-X github.com/Fepozopo/bgone/pkg/cli.Version=...".
var Version = "0.1.0"
