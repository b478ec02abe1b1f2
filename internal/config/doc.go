// Package config provides configuration management for plantrack.
//
// Configuration comes from three layers, later layers winning:
//  1. Built-in defaults (reports/ directory, PLAN.md plan document)
//  2. An optional .plantrack YAML file found in the current or home directory
//  3. CLI flags
//
// The package also resolves XDG base directories for the run-history
// database, following the XDG Base Directory Specification.
package config
