package workflow

import "time"

// NodeType tags a node with the executor family that runs it. The set is
// open: anything registered with the engine registry is a valid type.
type NodeType string

// Built-in node types.
const (
	NodeText  NodeType = "text"
	NodeImage NodeType = "image"
	NodeVideo NodeType = "video"
)

// Direction of a port.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Metadata identifies a workflow definition.
type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Position is canvas placement for the builder UI. The engine never reads it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a unit of work: a type tag plus a free-form attribute record
// whose meaning is scoped by the type (label, text, imageUrl, ...).
type Node struct {
	ID       string         `json:"id"`
	Type     NodeType       `json:"type"`
	Attrs    map[string]any `json:"attrs"`
	Position Position       `json:"position,omitzero"`
}

// Edge is a directed dependency: Target depends on Source. When TargetPort
// names a port, the dependency is scoped to that port's field; otherwise the
// whole source output record is inherited.
type Edge struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	SourcePort string `json:"sourcePort,omitempty"`
	TargetPort string `json:"targetPort,omitempty"`
	Label      string `json:"label,omitempty"`
}

// Port is a named, typed input/output slot on a node. Ports only exist to
// resolve field-to-field bindings; they are never executed on their own.
type Port struct {
	ID        string    `json:"id"`
	NodeID    string    `json:"nodeId"`
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
	DataType  string    `json:"dataType,omitempty"`
	Required  bool      `json:"required,omitempty"`
}

// Workflow is an immutable snapshot of a node/edge graph for the duration of
// one run. The builder collaborator owns mutation.
type Workflow struct {
	Metadata Metadata `json:"metadata"`
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Ports    []Port   `json:"ports"`
}
