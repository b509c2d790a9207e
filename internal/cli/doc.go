// Package cli parses command-line arguments and environment variables into
// the application configuration.
package cli
