package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// JobsParams is the server-side slice of the listing query. Client-only
// refinements (remote, min score, sort) are applied by the caller after the
// page comes back.
type JobsParams struct {
	Keyword  string
	Location string
	Skip     int
	Limit    int
}

func (p JobsParams) values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(p.Keyword); s != "" {
		v.Set("keyword", s)
	}
	if s := strings.TrimSpace(p.Location); s != "" {
		v.Set("location", s)
	}
	v.Set("skip", strconv.Itoa(p.Skip))
	v.Set("limit", strconv.Itoa(p.Limit))
	return v
}

// Jobs fetches one page of the listing.
func (c *Client) Jobs(ctx context.Context, p JobsParams) (JobPage, error) {
	b, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/jobs/",
		op:     "fetch jobs",
		params: p.values(),
		auth:   true,
	})
	if err != nil {
		return JobPage{}, err
	}
	return decodeJobPage(b), nil
}

// Job fetches a single posting.
func (c *Client) Job(ctx context.Context, id int64) (JobSummary, error) {
	var out JobSummary
	err := c.getJSON(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/jobs/%d", id),
		op:     "fetch job",
		auth:   true,
	}, &out)
	return out, err
}

// TriggerScrape asks the backend to start a scraping run. The run itself is
// asynchronous on the server; a nil return only means it was accepted.
func (c *Client) TriggerScrape(ctx context.Context, region, role string) error {
	params := url.Values{}
	if s := strings.TrimSpace(region); s != "" {
		params.Set("region", s)
	}
	if s := strings.TrimSpace(role); s != "" {
		params.Set("role", s)
	}
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/jobs/scrape",
		op:     "start scrape",
		params: params,
		auth:   true,
	})
	return err
}
