// Package nexo implements a relationship-resolution engine for entity
// records loaded from SQL storage.
//
// Models and their relationships (to-one, to-many, and many-to-many through
// a pivot table) are declared once and validated at schema registration.
// Relationships are resolved either eagerly, batched over a whole result set
// with exactly one query per relationship regardless of batch size, or
// lazily, per entity on first access, with the resolved value memoized on
// the entity. Foreign and local key columns left unconfigured are inferred
// by naming convention.
//
//	schema := nexo.MustSchema(
//		nexo.NewModel("User", nexo.Relations(
//			rel.Many("posts", "Post"),
//		)),
//		nexo.NewModel("Post", nexo.Relations(
//			rel.One("author", "User").ForeignKey("author_id"),
//			rel.ManyThrough("tags", "Tag").Through("post_tags"),
//		)),
//		nexo.NewModel("Tag"),
//	)
//
//	client := nexo.NewClient(schema, nexo.Driver(drv))
//	users, err := client.Model("User").With("posts").All(ctx)
package nexo

import (
	"time"

	"github.com/syssam/nexo/dialect"
)

// config holds the client configuration assembled from options.
type config struct {
	driver   dialect.Driver
	cache    Cache
	cacheTTL time.Duration
	debug    bool
	log      func(...any)
}

// An Option configures a client.
type Option func(*config)

// Driver configures the client storage driver.
func Driver(d dialect.Driver) Option {
	return func(c *config) { c.driver = d }
}

// Debug enables query logging on the client driver.
func Debug() Option {
	return func(c *config) { c.debug = true }
}

// Log sets the logging function used when Debug is enabled.
func Log(fn func(...any)) Option {
	return func(c *config) { c.log = fn }
}

// WithCache configures an optional record cache for relation and batch
// queries. Entries are keyed by the final query text and arguments and
// expire after ttl (0 means no expiry).
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *config) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// A Client resolves relationships for the models of a single schema against
// a storage driver. Resolution is synchronous: every resolve call issues at
// most one blocking round-trip to storage and fully populates its batch
// before returning.
type Client struct {
	schema *Schema
	config
}

// NewClient creates a client for the given schema.
func NewClient(schema *Schema, opts ...Option) *Client {
	c := &Client{schema: schema}
	for _, opt := range opts {
		opt(&c.config)
	}
	if c.debug && c.driver != nil {
		if c.log != nil {
			c.driver = dialect.Debug(c.driver, c.log)
		} else {
			c.driver = dialect.Debug(c.driver)
		}
	}
	return c
}

// Schema returns the client schema.
func (c *Client) Schema() *Schema { return c.schema }

// Close closes the underlying storage driver.
func (c *Client) Close() error {
	if c.driver == nil {
		return nil
	}
	return c.driver.Close()
}

func (c *Client) dialect() string {
	if c.driver == nil {
		return ""
	}
	return c.driver.Dialect()
}
