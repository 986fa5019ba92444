// Package tables loads the strategy chart, the count deviations and the
// counting system from HCL, JSON, YAML or TOML documents.
//
// Built-in defaults are embedded; every loader falls back to them when no
// path is configured. A missing deviations file is not an error, a missing
// strategy or counting file is.
package tables
