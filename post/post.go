package post

import "strings"

// RequiredFields lists the keys every post object must carry.
var RequiredFields = []string{
	"preview_url",
	"sample_url",
	"file_url",
	"directory",
	"hash",
	"height",
	"width",
	"id",
	"image",
	"change",
	"owner",
	"parent_id",
	"rating",
	"sample",
	"sample_height",
	"sample_width",
	"score",
	"tags",
}

// Post is the metadata record for one content item.
//
// Posts returned by the client may be shared with its cache. Treat them as
// read-only.
type Post struct {
	PreviewURL   string `json:"preview_url"`
	SampleURL    string `json:"sample_url"`
	FileURL      string `json:"file_url"`
	Directory    string `json:"directory"`
	Hash         string `json:"hash"`
	Height       int    `json:"height"`
	Width        int    `json:"width"`
	ID           int64  `json:"id"`
	Image        string `json:"image"`
	Change       int64  `json:"change"`
	Owner        string `json:"owner"`
	ParentID     *int64 `json:"parent_id"` // nil when the API sends null
	Rating       string `json:"rating"`
	Sample       bool   `json:"sample"`
	SampleHeight int    `json:"sample_height"`
	SampleWidth  int    `json:"sample_width"`
	Score        int    `json:"score"`
	Tags         string `json:"tags"`
}

// TagList splits the tag-string into individual tags.
func (p *Post) TagList() []string {
	return strings.Fields(p.Tags)
}

// HasParent reports whether the post names a parent post.
// The API uses both null and 0 for "no parent".
func (p *Post) HasParent() bool {
	return p.ParentID != nil && *p.ParentID != 0
}
