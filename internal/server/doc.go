// Package server is the HTTP transport in front of the engine: workflow
// CRUD, execution endpoints, and a health check, all wrapped in a uniform
// JSON envelope with rate limiting. It validates records at the boundary
// and relays the engine's execution reports verbatim.
package server
