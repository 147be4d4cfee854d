package logger

import (
	"github.com/fatih/color"
)

// Colorized printf-style logging functions shared by every package.
// Green for normal progress, magenta for warnings (bright enough to
// stand out on a router's serial console), red for errors.

var Info = color.New(color.FgGreen).PrintfFunc()

var Warn = color.New(color.FgHiMagenta).PrintfFunc()

var Error = color.New(color.FgRed).PrintfFunc()

// Debug is assigned during Init based on the --debug flag.
// When disabled it is a no-op so callers never need to guard it.
var Debug func(format string, a ...any)

// Init enables or disables debug logging. The root command calls this
// in PersistentPreRun before any subcommand runs.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

func init() {
	// Safe default so packages can log debug lines even if a test
	// never goes through the CLI entry point.
	Init(false)
}
