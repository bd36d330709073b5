package step

import (
	"fmt"

	"github.com/matzehuels/bstviz/pkg/core/bst"
)

// Kind classifies an [Event].
type Kind uint8

const (
	// Compare highlights the node the pending value is compared with next.
	Compare Kind = iota
	// MoveLeft descends to the left child of the compared node.
	MoveLeft
	// MoveRight descends to the right child of the compared node.
	MoveRight
	// PlaceRoot inserts the first value as the root.
	PlaceRoot
	// PlaceLeft inserts the value as the left child of the compared node.
	PlaceLeft
	// PlaceRight inserts the value as the right child of the compared node.
	PlaceRight
	// Duplicate skips a value equal to the compared node.
	Duplicate
	// Done reports that every pending value has been handled.
	Done
	// Deleted reports a removed value.
	Deleted
	// NotFound reports a delete request for an absent value.
	NotFound
)

var kindNames = [...]string{
	Compare:    "compare",
	MoveLeft:   "move-left",
	MoveRight:  "move-right",
	PlaceRoot:  "place-root",
	PlaceLeft:  "place-left",
	PlaceRight: "place-right",
	Duplicate:  "duplicate",
	Done:       "done",
	Deleted:    "deleted",
	NotFound:   "not-found",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown step kind %q", b)
}

// Mutates reports whether events of this kind changed the tree.
func (k Kind) Mutates() bool {
	switch k {
	case PlaceRoot, PlaceLeft, PlaceRight, Deleted:
		return true
	}
	return false
}

// Event describes one step.
type Event struct {
	Kind  Kind
	Value bst.Value

	// Node is the node compared with, moved to, or created. For Deleted
	// events it is the node that kept its place (nil for a removed leaf).
	Node *bst.Node

	// Parent is the node a new value was attached to.
	Parent *bst.Node

	// Index is the position of Value in the pending list, or -1.
	Index int

	// Message is the status line to display.
	Message string

	// Delete is set on Deleted events.
	Delete *DeletePlan
}
