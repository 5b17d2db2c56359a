// Package render contains shopping-list document renderers. A PDF engine is
// an external collaborator; the shipped implementation produces plain text
// with the same line format.
package render

import (
	"bytes"
	"fmt"

	"github.com/PlatonKara/foodgram-backend/database"
)

// TextRenderer renders the aggregated shopping list as a plain-text document.
type TextRenderer struct{}

func NewTextRenderer() TextRenderer {
	return TextRenderer{}
}

func (TextRenderer) Render(items []database.ShoppingListRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("Shopping list\n\n")
	for _, item := range items {
		fmt.Fprintf(&buf, "- %s (%s): %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return buf.Bytes(), nil
}

func (TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (TextRenderer) Filename() string {
	return "shopping_list.txt"
}
