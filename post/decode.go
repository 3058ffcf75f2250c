package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// wirePost mirrors Post but tolerates the loose typing the API uses for
// directory and sample.
type wirePost struct {
	PreviewURL   string     `json:"preview_url"`
	SampleURL    string     `json:"sample_url"`
	FileURL      string     `json:"file_url"`
	Directory    flexString `json:"directory"`
	Hash         string     `json:"hash"`
	Height       int        `json:"height"`
	Width        int        `json:"width"`
	ID           int64      `json:"id"`
	Image        string     `json:"image"`
	Change       int64      `json:"change"`
	Owner        string     `json:"owner"`
	ParentID     *int64     `json:"parent_id"`
	Rating       string     `json:"rating"`
	Sample       flexBool   `json:"sample"`
	SampleHeight int        `json:"sample_height"`
	SampleWidth  int        `json:"sample_width"`
	Score        int        `json:"score"`
	Tags         string     `json:"tags"`
}

// ParseList decodes a JSON array of post objects.
//
// A body that is empty, not valid JSON, or not an array fails with
// ErrMalformed. An empty array yields an empty, non-nil slice.
func ParseList(body []byte) ([]*Post, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrMalformed)
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected JSON array, got %s", ErrMalformed, doc.Type)
	}

	items := doc.Array()
	posts := make([]*Post, 0, len(items))
	for i, item := range items {
		p, err := FromObject([]byte(item.Raw))
		if err != nil {
			return nil, fmt.Errorf("post %d: %w", i, err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// FromObject builds a Post from a single JSON object.
func FromObject(raw []byte) (*Post, error) {
	raw = bytes.TrimSpace(raw)
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: object is not valid JSON", ErrMalformed)
	}

	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: expected JSON object, got %s", ErrMalformed, obj.Type)
	}

	for _, key := range RequiredFields {
		if !obj.Get(key).Exists() {
			return nil, &FieldMissingError{Field: key}
		}
	}

	var w wirePost
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}

	return &Post{
		PreviewURL:   w.PreviewURL,
		SampleURL:    w.SampleURL,
		FileURL:      w.FileURL,
		Directory:    string(w.Directory),
		Hash:         w.Hash,
		Height:       w.Height,
		Width:        w.Width,
		ID:           w.ID,
		Image:        w.Image,
		Change:       w.Change,
		Owner:        w.Owner,
		ParentID:     w.ParentID,
		Rating:       w.Rating,
		Sample:       bool(w.Sample),
		SampleHeight: w.SampleHeight,
		SampleWidth:  w.SampleWidth,
		Score:        w.Score,
		Tags:         w.Tags,
	}, nil
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(n.String())
	return nil
}

// flexBool accepts true/false, 0/1 and their quoted forms.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}

	switch text {
	case "null", "":
		*b = false
		return nil
	case "true":
		*b = true
		return nil
	case "false":
		*b = false
		return nil
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("expected boolean-like value, got %s", data)
	}
	*b = n != 0
	return nil
}
