// Package config loads, normalizes, and validates kiln configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// JAVA_HOME. The Config type centralizes every knob the CLI and the daemon
// launcher need: the daemon endpoint, JVM settings, argument-filtering
// policy, and history/log locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical policy names, and clear validation errors.
package config
