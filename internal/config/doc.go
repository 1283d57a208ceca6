// Package config loads, normalizes, and validates cardmeta configuration.
//
// The values that the original scripts hard-coded (similarity threshold,
// top-N, input directory, aggregate file name) live here as an explicit
// structure so the jobs can be driven with synthetic settings in tests.
// Resolution order is: explicit --config path, ~/.config/cardmeta/config.toml,
// ./cardmeta.toml, then built-in defaults. A handful of CARDMETA_* environment
// variables override file values after decoding.
package config
