// Package version exposes build metadata for the alarm-scheduler binary.
//
// Version, Commit, and BuildTime are injected via Go ldflags; local builds
// keep their placeholder defaults. Short renders just the semantic version
// and Full the complete build description for CLI output and logs.
package version
