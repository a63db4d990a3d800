package nexo_test

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/syssam/nexo"
	"github.com/syssam/nexo/dialect"
	"github.com/syssam/nexo/dialect/sql"
	"github.com/syssam/nexo/schema/rel"
)

// Base and relation queries produced by the blog fixture against the
// postgres dialect. Argument placeholders are appended per test.
const (
	usersQuery = `SELECT * FROM "users"`
	postsQuery = `SELECT * FROM "posts"`
	tagsQuery  = `SELECT "tags".*, "post_tags"."tag_id" AS "pivot_tag_id", "post_tags"."post_id" AS "pivot_post_id" FROM "tags" JOIN "post_tags" ON "post_tags"."tag_id" = "tags"."id" WHERE "post_tags"."post_id" IN `
)

// testSchema declares the blog fixture used across the engine tests:
// users own posts (and a non-lazy filtered "drafts" view of them), posts
// point back to their author and carry tags through a pivot table.
func testSchema(t *testing.T) *nexo.Schema {
	t.Helper()
	schema, err := nexo.NewSchema(
		nexo.NewModel("User", nexo.Relations(
			rel.Many("posts", "Post").LocalKey("author_id"),
			rel.Many("drafts", "Post").LocalKey("author_id").Lazy(false).
				Modify(func(s *sql.Selector) {
					s.Where(sql.EQ(s.C("draft"), true))
				}),
		)),
		nexo.NewModel("Post", nexo.Relations(
			rel.One("author", "User").ForeignKey("author_id"),
			rel.ManyThrough("tags", "Tag").Through("post_tags"),
		)),
		nexo.NewModel("Tag"),
	)
	require.NoError(t, err)
	return schema
}

// newTestClient returns a client over a sqlmock connection speaking the
// postgres dialect, closed automatically at test end.
func newTestClient(t *testing.T, opts ...nexo.Option) (*nexo.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := sql.OpenDB(dialect.Postgres, db)
	client := nexo.NewClient(testSchema(t), append([]nexo.Option{nexo.Driver(drv)}, opts...)...)
	t.Cleanup(func() {
		mock.ExpectClose()
		require.NoError(t, client.Close())
	})
	return client, mock
}

// expectQuery registers an exact-text query expectation on the mock.
func expectQuery(mock sqlmock.Sqlmock, query string) *sqlmock.ExpectedQuery {
	return mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$")
}

func userRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name"})
	for _, id := range ids {
		rows.AddRow(id, "user-"+strconv.FormatInt(id, 10))
	}
	return rows
}
