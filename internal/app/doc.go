// Package app wires the application together: configuration, logging, the
// executor registry, the store, and the two run modes (execute a definition
// file once, or serve the HTTP API).
package app
