// Package file provides the TOML-backed configuration store.
//
// Settings live in config.toml inside the split-engine config directory
// (~/.splitengine by default). Nested tables are exposed as dot-notation
// keys, so [split] default_lines = 300 is read as "split.default_lines".
package file
