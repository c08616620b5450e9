// AngelaMos | 2026
// content_test.go

package funnel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/agencyhub/internal/core"
)

func sampleTree() Node {
	return Node{
		ID:   "root",
		Type: TypeBody,
		Name: "Body",
		Children: []Node{
			{
				ID:   "row",
				Type: TypeTwoColumns,
				Name: "Two Columns",
				Children: []Node{
					{
						ID:    "headline",
						Type:  TypeText,
						Name:  "Headline",
						Props: map[string]string{"innerText": "Welcome"},
						Styles: map[string]any{
							"fontSize": "32px",
						},
					},
					{
						ID:    "cta",
						Type:  TypeLink,
						Name:  "CTA",
						Props: map[string]string{"href": "/signup"},
					},
				},
			},
			{
				ID:   "form",
				Type: TypeContactForm,
				Name: "Contact Form",
			},
		},
	}
}

func TestContentRoundTrip(t *testing.T) {
	original := sampleTree()

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := ParseContent(string(encoded))
	require.NoError(t, err)

	assert.Equal(t, "root", decoded.ID)
	require.Len(t, decoded.Children, 2)

	row := decoded.Children[0]
	assert.Equal(t, TypeTwoColumns, row.Type)
	require.Len(t, row.Children, 2)

	headline := row.Children[0]
	assert.Equal(t, "Welcome", headline.Props["innerText"])
	assert.Equal(t, "32px", headline.Styles["fontSize"])

	cta := row.Children[1]
	assert.Equal(t, "/signup", cta.Props["href"])
	assert.Empty(t, cta.Children)
}

func TestContainerContentEncodesAsArray(t *testing.T) {
	encoded, err := json.Marshal(Node{
		ID: "root", Type: TypeBody, Name: "Body",
	})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &raw))

	// an empty container still serializes its content as an array so
	// the editor can append into it
	assert.JSONEq(t, "[]", string(raw["content"]))
}

func TestDefaultContentIsValid(t *testing.T) {
	root := DefaultContent()
	assert.Equal(t, TypeBody, root.Type)
	assert.NoError(t, ValidateTree(&root))
}

func TestValidateTreeRejectsNonBodyRoot(t *testing.T) {
	root := Node{ID: "x", Type: TypeContainer, Name: "Container"}
	assert.ErrorIs(t, ValidateTree(&root), core.ErrInvalidInput)
}

func TestValidateTreeRejectsUnknownType(t *testing.T) {
	root := Node{
		ID:   "root",
		Type: TypeBody,
		Children: []Node{
			{ID: "bad", Type: "carousel"},
		},
	}
	assert.ErrorIs(t, ValidateTree(&root), core.ErrInvalidInput)
}

func TestValidateTreeRejectsNestedBody(t *testing.T) {
	root := Node{
		ID:   "root",
		Type: TypeBody,
		Children: []Node{
			{ID: "inner", Type: TypeBody},
		},
	}
	assert.ErrorIs(t, ValidateTree(&root), core.ErrInvalidInput)
}

func TestValidateTreeRejectsDuplicateIDs(t *testing.T) {
	root := Node{
		ID:   "root",
		Type: TypeBody,
		Children: []Node{
			{ID: "dup", Type: TypeText},
			{ID: "dup", Type: TypeVideo},
		},
	}
	assert.ErrorIs(t, ValidateTree(&root), core.ErrInvalidInput)
}

func TestValidateTreeRejectsLeafWithChildren(t *testing.T) {
	root := Node{
		ID:   "root",
		Type: TypeBody,
		Children: []Node{
			{
				ID:   "txt",
				Type: TypeText,
				Children: []Node{
					{ID: "nested", Type: TypeText},
				},
			},
		},
	}
	assert.ErrorIs(t, ValidateTree(&root), core.ErrInvalidInput)
}

func TestParseContentRejectsGarbage(t *testing.T) {
	_, err := ParseContent("{not json")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
