// Package workflow defines the shared data model for the engine: workflows,
// nodes, edges and ports, plus the boundary guard that checks the structural
// shape of records arriving from the builder and transport collaborators.
package workflow
