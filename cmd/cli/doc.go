// Package cli assembles the kaclone command-line application: the
// provisioning command serves as the root command, and the package layers
// configuration loading, logger construction, and persistent flags on top
// of it before execution.
package cli
