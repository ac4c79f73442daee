// Package config loads and validates cliplab's TOML configuration: the
// session store location, external tool binaries, edit duration bounds,
// thumbnail qualities, and log settings. Load falls back to defaults when
// no file exists; every loaded config is normalized (paths expanded) and
// validated before use.
package config
