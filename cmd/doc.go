// Package cmd implements the command-line interface for the sstate
// session state library. It provides a small command structure with
// operations for inspecting codecs and benchmarking the collection.
//
// The package is organized into several subpackages:
//
//   - bench: Commands for benchmarking the session collection and codecs
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See sstate -help for a list of all commands.
package cmd
