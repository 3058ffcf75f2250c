// Package cache provides the in-memory lookup cache used by the rule34 client.
//
// It holds three independent namespaces (post by identifier, post list by
// change-token, post list by tag-string). Entries are never evicted and never
// expire; the cache lives as long as the client that owns it.
package cache
