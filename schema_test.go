package nexo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/nexo"
	"github.com/syssam/nexo/schema/rel"
)

func TestNewSchemaValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		models []*nexo.Model
		reason string
	}{
		{
			name: "empty_relation_name",
			models: []*nexo.Model{
				nexo.NewModel("User", nexo.Relations(rel.Many("", "Post"))),
				nexo.NewModel("Post"),
			},
			reason: "relation name is empty",
		},
		{
			name: "duplicate_relation_name",
			models: []*nexo.Model{
				nexo.NewModel("User", nexo.Relations(
					rel.Many("posts", "Post"),
					rel.Many("posts", "Post"),
				)),
				nexo.NewModel("Post"),
			},
			reason: "duplicate relation name",
		},
		{
			name: "pivot_on_one",
			models: []*nexo.Model{
				nexo.NewModel("Post", nexo.Relations(
					rel.One("author", "User").Through("post_users"),
				)),
				nexo.NewModel("User"),
			},
			reason: "pivot table set",
		},
		{
			name: "pivot_on_many",
			models: []*nexo.Model{
				nexo.NewModel("User", nexo.Relations(
					rel.Many("posts", "Post").Through("user_posts"),
				)),
				nexo.NewModel("Post"),
			},
			reason: "pivot table set",
		},
		{
			name: "many_through_without_pivot",
			models: []*nexo.Model{
				nexo.NewModel("Post", nexo.Relations(
					rel.ManyThrough("tags", "Tag"),
				)),
				nexo.NewModel("Tag"),
			},
			reason: "requires a pivot table",
		},
		{
			name: "unregistered_related_model",
			models: []*nexo.Model{
				nexo.NewModel("User", nexo.Relations(rel.Many("posts", "Post"))),
			},
			reason: "is not registered",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := nexo.NewSchema(tt.models...)
			require.Error(t, err)
			assert.True(t, nexo.IsInvalidRelation(err))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestNewSchemaDuplicateModel(t *testing.T) {
	t.Parallel()

	_, err := nexo.NewSchema(nexo.NewModel("User"), nexo.NewModel("User"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate model "User"`)
}

func TestMustSchemaPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		nexo.MustSchema(nexo.NewModel("User"), nexo.NewModel("User"))
	})
	assert.NotPanics(t, func() {
		nexo.MustSchema(nexo.NewModel("User"))
	})
}

func TestModelDefaults(t *testing.T) {
	t.Parallel()

	m := nexo.NewModel("OrderItem")
	assert.Equal(t, "OrderItem", m.Name())
	assert.Equal(t, "order_items", m.Table())
	assert.Equal(t, "id", m.IDColumn())

	m = nexo.NewModel("User", nexo.Table("accounts"), nexo.ID("uuid"))
	assert.Equal(t, "accounts", m.Table())
	assert.Equal(t, "uuid", m.IDColumn())
}

func TestSchemaAccessors(t *testing.T) {
	t.Parallel()

	schema := testSchema(t)
	assert.Equal(t, []string{"User", "Post", "Tag"}, schema.Models())

	m, ok := schema.Model("User")
	require.True(t, ok)
	assert.Equal(t, []string{"posts", "drafts"}, m.Relations())

	d, ok := m.Relation("posts")
	require.True(t, ok)
	assert.Equal(t, rel.KindMany, d.Kind)
	assert.Equal(t, "author_id", d.LocalKey)
	assert.True(t, d.Lazy)

	d, ok = m.Relation("drafts")
	require.True(t, ok)
	assert.False(t, d.Lazy)

	_, ok = m.Relation("ghosts")
	assert.False(t, ok)

	_, ok = schema.Model("Ghost")
	assert.False(t, ok)
}
