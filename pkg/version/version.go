package version

// Current defines the application version.
// It defaults to "dev" but is overwritten at release time using -ldflags.
var Current = "dev"

// AppName identifies the tool in logs, telemetry and the TUI footer.
const AppName = "PathWeaver"
