package cache

import "github.com/jonwraymond/rule34/post"

// Namespace labels.
const (
	NamespaceID     = "id"
	NamespaceChange = "change"
	NamespaceTags   = "tags"
)

// Cache holds the client's three lookup namespaces.
type Cache struct {
	ids     *Store[int64, *post.Post]
	changes *Store[int64, []*post.Post]
	tags    *Store[string, []*post.Post]
}

// Stats holds per-namespace entry counts.
type Stats struct {
	IDs     int
	Changes int
	Tags    int
}

// Total returns the entry count across all namespaces.
func (s Stats) Total() int {
	return s.IDs + s.Changes + s.Tags
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		ids:     NewStore[int64, *post.Post](NamespaceID),
		changes: NewStore[int64, []*post.Post](NamespaceChange),
		tags:    NewStore[string, []*post.Post](NamespaceTags),
	}
}

// IDs returns the identifier namespace.
func (c *Cache) IDs() *Store[int64, *post.Post] { return c.ids }

// Changes returns the change-token namespace.
func (c *Cache) Changes() *Store[int64, []*post.Post] { return c.changes }

// Tags returns the tag-string namespace.
func (c *Cache) Tags() *Store[string, []*post.Post] { return c.tags }

// InsertID stores p under id.
func (c *Cache) InsertID(id int64, p *post.Post) { c.ids.Set(id, p) }

// RetrieveID returns the post cached under id.
func (c *Cache) RetrieveID(id int64) (*post.Post, bool) { return c.ids.Get(id) }

// InsertChange stores posts under the change-token cid.
func (c *Cache) InsertChange(cid int64, posts []*post.Post) { c.changes.Set(cid, posts) }

// RetrieveChange returns the posts cached under cid.
func (c *Cache) RetrieveChange(cid int64) ([]*post.Post, bool) { return c.changes.Get(cid) }

// InsertTags stores posts under the exact tag-string.
func (c *Cache) InsertTags(tags string, posts []*post.Post) { c.tags.Set(tags, posts) }

// RetrieveTags returns the posts cached under the exact tag-string.
func (c *Cache) RetrieveTags(tags string) ([]*post.Post, bool) { return c.tags.Get(tags) }

// Stats returns the current entry counts.
func (c *Cache) Stats() Stats {
	return Stats{
		IDs:     c.ids.Len(),
		Changes: c.changes.Len(),
		Tags:    c.tags.Len(),
	}
}

// Entries returns the total entry count across all namespaces.
func (c *Cache) Entries() int {
	return c.Stats().Total()
}
