package info

import (
	"runtime"
)

// Version is overridden at link time with -ldflags "-X".
var Version = "dev"

func OS() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	default:
		return runtime.GOOS
	}
}
