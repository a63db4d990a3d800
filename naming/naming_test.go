package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/nexo/naming"
)

func TestForeignKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plural_table", "users", "user_id"},
		{"singular_table", "user", "user_id"},
		{"model_identifier", "User", "user_id"},
		{"already_derived", "user_id", "user_id"},
		{"irregular_plural", "people", "person_id"},
		{"irregular_singular", "person", "person_id"},
		{"multi_word", "order_items", "order_item_id"},
		{"camel_case_model", "OrderItem", "order_item_id"},
		{"category", "categories", "category_id"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, naming.ForeignKey(tt.input))
		})
	}
}

// TestForeignKeyIdempotent checks that re-inferring on an inferred key is
// stable, so explicit and inferred configurations never diverge.
func TestForeignKeyIdempotent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"users", "posts", "people", "order_items"} {
		fk := naming.ForeignKey(input)
		assert.Equal(t, fk, naming.ForeignKey(fk), "input %q", input)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"User", "users"},
		{"Post", "posts"},
		{"OrderItem", "order_items"},
		{"Person", "people"},
		{"Tag", "tags"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, naming.Table(tt.input))
		})
	}
}
