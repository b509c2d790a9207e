// Package store persists workflow definitions and execution reports. It
// defines the Store contract plus a thread-safe in-memory implementation
// used for development, tests, and as the fallback when DATABASE_URL is
// not configured.
package store
