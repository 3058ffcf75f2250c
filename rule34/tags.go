package rule34

import (
	"slices"
	"strings"
)

// TagQuery builds a tag-string from wanted and excluded tags.
//
// Tags are normalized on the way in: surrounding space is dropped, inner
// runs of whitespace become "_" (the API's word separator) and leading "-"
// is stripped. Duplicates are ignored. A TagQuery is a value; Include and
// Exclude return a new query.
type TagQuery struct {
	include []string
	exclude []string
}

// ParseTagQuery splits a tag-string on whitespace. Tokens prefixed with
// "-" are excluded, all others are included.
func ParseTagQuery(s string) TagQuery {
	var q TagQuery
	for _, tok := range strings.Fields(s) {
		if name, ok := strings.CutPrefix(tok, "-"); ok {
			q.exclude = appendTag(q.exclude, name)
		} else {
			q.include = appendTag(q.include, tok)
		}
	}
	return q
}

// Include returns a query that also requires tags.
func (q TagQuery) Include(tags ...string) TagQuery {
	out := q.clone()
	for _, t := range tags {
		out.include = appendTag(out.include, t)
	}
	return out
}

// Exclude returns a query that also rejects tags.
func (q TagQuery) Exclude(tags ...string) TagQuery {
	out := q.clone()
	for _, t := range tags {
		out.exclude = appendTag(out.exclude, t)
	}
	return out
}

// Includes returns the wanted tags in insertion order.
func (q TagQuery) Includes() []string {
	return slices.Clone(q.include)
}

// Excludes returns the excluded tags in insertion order, without "-".
func (q TagQuery) Excludes() []string {
	return slices.Clone(q.exclude)
}

// String renders the query as a tag-string: included tags first, then
// excluded tags with a "-" prefix.
func (q TagQuery) String() string {
	parts := make([]string, 0, len(q.include)+len(q.exclude))
	parts = append(parts, q.include...)
	for _, t := range q.exclude {
		parts = append(parts, "-"+t)
	}
	return strings.Join(parts, " ")
}

// Conflicts returns tags that are both included and excluded. Such a
// query matches nothing.
func (q TagQuery) Conflicts() []string {
	var out []string
	for _, t := range q.include {
		if slices.Contains(q.exclude, t) {
			out = append(out, t)
		}
	}
	return out
}

// Blacklist renders tags as a tag-string of exclusions, suitable for
// GetRandom.
func Blacklist(tags ...string) string {
	return TagQuery{}.Exclude(tags...).String()
}

func (q TagQuery) clone() TagQuery {
	return TagQuery{
		include: slices.Clone(q.include),
		exclude: slices.Clone(q.exclude),
	}
}

func appendTag(list []string, tag string) []string {
	tag = normalizeTag(tag)
	if tag == "" || slices.Contains(list, tag) {
		return list
	}
	return append(list, tag)
}

func normalizeTag(tag string) string {
	tag = strings.TrimLeft(strings.TrimSpace(tag), "-")
	return strings.Join(strings.Fields(tag), "_")
}
