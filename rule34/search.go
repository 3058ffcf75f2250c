package rule34

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/jonwraymond/rule34/cache"
	"github.com/jonwraymond/rule34/observe"
	"github.com/jonwraymond/rule34/post"
)

// SearchByID returns the post with the given identifier.
//
// The result is cached by identifier; later calls for the same id return
// the same *post.Post without a request. A body that is not a JSON array,
// or an empty array, fails with ErrPostNotFound.
func (c *Client) SearchByID(ctx context.Context, id int64) (*post.Post, error) {
	meta := observe.CallMeta{Operation: OpSearchByID, Query: strconv.FormatInt(id, 10)}

	return observe.Run(ctx, c.mw, meta, func(ctx context.Context) (*post.Post, error) {
		p, hit, err := c.cache.IDs().GetOrLoad(ctx, id, func(ctx context.Context) (*post.Post, error) {
			return c.fetchOne(ctx, idParams(id), fmt.Sprintf("id %d", id))
		})
		c.mw.CacheLookup(ctx, meta, cache.NamespaceID, hit)
		return p, err
	})
}

// SearchByChange returns up to limit posts edited in the change batch cid.
// Results are cached by cid alone.
func (c *Client) SearchByChange(ctx context.Context, cid int64, limit int) ([]*post.Post, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	meta := observe.CallMeta{Operation: OpSearchByChange, Query: strconv.FormatInt(cid, 10), Limit: limit}

	return cachedList(ctx, c, meta, c.cache.Changes(), cid, changeParams(cid, limit))
}

// SearchByTags returns up to limit posts matching the tag-string.
// Results are cached under the exact tag-string; a later call with the
// same tags and a different limit is served from the cache.
func (c *Client) SearchByTags(ctx context.Context, tags string, limit int) ([]*post.Post, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	meta := observe.CallMeta{Operation: OpSearchByTags, Query: tags, Limit: limit}
	c.warnConflicts(ctx, meta, tags)

	return cachedList(ctx, c, meta, c.cache.Tags(), tags, tagParams(tags, limit))
}

// GetRandom returns up to limit posts that avoid the blacklist, a
// tag-string whose tokens should each carry a "-" prefix (see Blacklist).
// It shares the tag namespace of the cache with SearchByTags.
func (c *Client) GetRandom(ctx context.Context, blacklist string, limit int) ([]*post.Post, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	meta := observe.CallMeta{Operation: OpGetRandom, Query: blacklist, Limit: limit}
	c.warnConflicts(ctx, meta, blacklist)

	return cachedList(ctx, c, meta, c.cache.Tags(), blacklist, tagParams(blacklist, limit))
}

// GetLatest returns the most recent post. It always issues a request and
// never reads or writes the cache.
func (c *Client) GetLatest(ctx context.Context) (*post.Post, error) {
	meta := observe.CallMeta{Operation: OpGetLatest, Limit: 1}

	return observe.Run(ctx, c.mw, meta, func(ctx context.Context) (*post.Post, error) {
		return c.fetchOne(ctx, tagParams("", 1), "latest")
	})
}

// Ping issues the latest-post request and discards the body.
// It satisfies health.Pinger.
func (c *Client) Ping(ctx context.Context) error {
	meta := observe.CallMeta{Operation: OpPing, Limit: 1}

	_, err := observe.Run(ctx, c.mw, meta, func(ctx context.Context) (struct{}, error) {
		_, err := c.fetch(ctx, tagParams("", 1))
		return struct{}{}, err
	})
	return err
}

func checkLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	return nil
}

// cachedList serves a list operation from store, loading it on a miss.
func cachedList[K comparable](ctx context.Context, c *Client, meta observe.CallMeta, store *cache.Store[K, []*post.Post], key K, p params) ([]*post.Post, error) {
	return observe.Run(ctx, c.mw, meta, func(ctx context.Context) ([]*post.Post, error) {
		posts, hit, err := store.GetOrLoad(ctx, key, func(ctx context.Context) ([]*post.Post, error) {
			return c.fetchList(ctx, p, fmt.Sprintf("%s %q", meta.Operation, meta.Query))
		})
		c.mw.CacheLookup(ctx, meta, store.Name(), hit)
		if err != nil {
			return nil, err
		}
		return slices.Clone(posts), nil
	})
}

// fetchOne requests p and returns the first post of the reply.
func (c *Client) fetchOne(ctx context.Context, p params, what string) (*post.Post, error) {
	body, err := c.fetch(ctx, p)
	if err != nil {
		return nil, err
	}
	posts, err := post.ParseList(body)
	if err != nil {
		return nil, decodeError(ErrPostNotFound, what, err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, what)
	}
	return posts[0], nil
}

// fetchList requests p and returns every post of the reply. An empty
// array is a valid, empty result.
func (c *Client) fetchList(ctx context.Context, p params, what string) ([]*post.Post, error) {
	body, err := c.fetch(ctx, p)
	if err != nil {
		return nil, err
	}
	posts, err := post.ParseList(body)
	if err != nil {
		return nil, decodeError(ErrPostsNotFound, what, err)
	}
	return posts, nil
}

func (c *Client) warnConflicts(ctx context.Context, meta observe.CallMeta, tags string) {
	conflicts := ParseTagQuery(tags).Conflicts()
	if len(conflicts) == 0 {
		return
	}
	c.logger.WithCall(meta).Warn(ctx, "tag-string both includes and excludes tags; expect no results",
		observe.Field{Key: "conflicts", Value: conflicts},
	)
}
