package festival

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Run("Should trim every field", func(t *testing.T) {
		f := Filter{Country: " France ", Genre: "\tjazz", ArtForm: "music ", Search: " paris"}
		assert.Equal(t, Filter{Country: "France", Genre: "jazz", ArtForm: "music", Search: "paris"}, f.Trimmed())
	})

	t.Run("Should be empty when every field is blank", func(t *testing.T) {
		assert.True(t, Filter{}.IsEmpty())
		assert.True(t, Filter{Search: "  "}.IsEmpty())
		assert.False(t, Filter{Genre: "jazz"}.IsEmpty())
	})
}
