package render

import (
	"testing"

	"github.com/PlatonKara/foodgram-backend/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer(t *testing.T) {
	renderer := NewTextRenderer()

	out, err := renderer.Render([]database.ShoppingListRow{
		{Name: "pepper", MeasurementUnit: "g", Total: 2},
		{Name: "salt", MeasurementUnit: "g", Total: 8},
	})
	require.NoError(t, err)

	want := "Shopping list\n\n- pepper (g): 2\n- salt (g): 8\n"
	assert.Equal(t, want, string(out))
	assert.Equal(t, "text/plain; charset=utf-8", renderer.ContentType())
	assert.Equal(t, "shopping_list.txt", renderer.Filename())
}
