// Package config loads and persists the scheduler's YAML settings.
//
// Only presentation concerns live here (log level, input prompt). The
// coordination core's pause durations and message length limit are fixed
// constants and deliberately have no configuration surface.
package config
