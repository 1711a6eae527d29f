package version

// Version is set at build time with -ldflags "-X primerset/internal/version.Version=...".
var Version = "dev"
