package rule34

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
)

// params are the query parameters the post index understands.
// Tags is a pointer so that an empty tag-string is still sent.
type params struct {
	ID    *int64  `url:"id,omitempty"`
	CID   *int64  `url:"cid,omitempty"`
	Tags  *string `url:"tags,omitempty"`
	Limit int     `url:"limit,omitempty"`
	JSON  int     `url:"json"`
}

func idParams(id int64) params {
	return params{ID: &id, JSON: 1}
}

func changeParams(cid int64, limit int) params {
	return params{CID: &cid, Limit: limit, JSON: 1}
}

func tagParams(tags string, limit int) params {
	return params{Tags: &tags, Limit: limit, JSON: 1}
}

// endpoint merges p onto the base URL's own query.
func (c *Client) endpoint(p params) (string, error) {
	values, err := query.Values(p)
	if err != nil {
		return "", fmt.Errorf("encode query: %w", err)
	}

	u := *c.baseURL
	merged := u.Query()
	for k, v := range values {
		merged[k] = v
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}

// fetch performs one GET through the executor and returns the body.
func (c *Client) fetch(ctx context.Context, p params) ([]byte, error) {
	target, err := c.endpoint(p)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = c.exec.Execute(ctx, func(ctx context.Context) error {
		data, err := c.get(ctx, target)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.baseURL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, c.maxBytes)
	}
	return data, nil
}
