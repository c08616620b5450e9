// AngelaMos | 2026
// content.go

package funnel

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

// Element types understood by the page editor. Container types hold
// children; leaf types hold inline props instead.
const (
	TypeBody        = "__body"
	TypeContainer   = "container"
	TypeTwoColumns  = "2Col"
	TypeText        = "text"
	TypeLink        = "link"
	TypeVideo       = "video"
	TypeContactForm = "contactForm"
	TypePaymentForm = "paymentForm"
)

var containerTypes = map[string]bool{
	TypeBody:       true,
	TypeContainer:  true,
	TypeTwoColumns: true,
}

var leafTypes = map[string]bool{
	TypeText:        true,
	TypeLink:        true,
	TypeVideo:       true,
	TypeContactForm: true,
	TypePaymentForm: true,
}

// Node is one element of a page tree. Exactly one of Children (for
// container types) or Props (for leaf types) is meaningful.
type Node struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Name     string            `json:"name"`
	Styles   map[string]any    `json:"styles,omitempty"`
	Children []Node            `json:"-"`
	Props    map[string]string `json:"-"`
}

// nodeJSON matches the wire shape: content is an array for containers
// and an object for leaves.
type nodeJSON struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Name    string          `json:"name"`
	Styles  map[string]any  `json:"styles,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		ID:     n.ID,
		Type:   n.Type,
		Name:   n.Name,
		Styles: n.Styles,
	}

	if containerTypes[n.Type] {
		children := n.Children
		if children == nil {
			children = []Node{}
		}
		raw, err := json.Marshal(children)
		if err != nil {
			return nil, err
		}
		out.Content = raw
	} else if len(n.Props) > 0 {
		raw, err := json.Marshal(n.Props)
		if err != nil {
			return nil, err
		}
		out.Content = raw
	}

	return json.Marshal(out)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ID = raw.ID
	n.Type = raw.Type
	n.Name = raw.Name
	n.Styles = raw.Styles
	n.Children = nil
	n.Props = nil

	if len(raw.Content) == 0 {
		return nil
	}

	if containerTypes[raw.Type] {
		return json.Unmarshal(raw.Content, &n.Children)
	}

	return json.Unmarshal(raw.Content, &n.Props)
}

// DefaultContent is the tree every new page starts from: a bare body
// element with no children.
func DefaultContent() Node {
	return Node{
		ID:   uuid.New().String(),
		Type: TypeBody,
		Name: "Body",
	}
}

// ParseContent decodes and validates a serialized page tree.
func ParseContent(data string) (*Node, error) {
	var root Node
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		return nil, fmt.Errorf("parse page content: %w", core.ErrInvalidInput)
	}

	if err := ValidateTree(&root); err != nil {
		return nil, err
	}

	return &root, nil
}

// ValidateTree enforces the structural rules: the root is a body
// element, every type is known, leaves carry no children, and element
// ids are unique across the tree.
func ValidateTree(root *Node) error {
	if root.Type != TypeBody {
		return fmt.Errorf(
			"page root must be a %s element: %w", TypeBody, core.ErrInvalidInput,
		)
	}

	seen := make(map[string]bool)
	return validateNode(root, seen)
}

func validateNode(n *Node, seen map[string]bool) error {
	if n.ID == "" {
		return fmt.Errorf("element without id: %w", core.ErrInvalidInput)
	}
	if seen[n.ID] {
		return fmt.Errorf(
			"duplicate element id %s: %w", n.ID, core.ErrInvalidInput,
		)
	}
	seen[n.ID] = true

	if !containerTypes[n.Type] && !leafTypes[n.Type] {
		return fmt.Errorf(
			"unknown element type %q: %w", n.Type, core.ErrInvalidInput,
		)
	}

	if leafTypes[n.Type] && len(n.Children) > 0 {
		return fmt.Errorf(
			"%s elements cannot have children: %w", n.Type, core.ErrInvalidInput,
		)
	}

	for i := range n.Children {
		if n.Children[i].Type == TypeBody {
			return fmt.Errorf(
				"%s is only valid at the root: %w", TypeBody, core.ErrInvalidInput,
			)
		}
		if err := validateNode(&n.Children[i], seen); err != nil {
			return err
		}
	}

	return nil
}
