package listing

import (
	"sort"
	"strings"
	"time"

	"jobpilot-client/internal/api"
)

type SortBy string

const (
	SortMatchScore SortBy = "match_score"
	SortPostedDate SortBy = "posted_date"
)

// Query is the user-controlled slice of the listing: fully owned by the view
// and passed by value into the controller on every change. Keyword, location
// and paging go to the server; the rest refines the returned page locally.
type Query struct {
	Keyword       string
	Location      string
	Remote        bool
	FullTime      bool
	ExcludeScams  bool
	MinMatchScore int
	SortBy        SortBy
	Page          int
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.MinMatchScore < 0 {
		q.MinMatchScore = 0
	}
	if q.MinMatchScore > 100 {
		q.MinMatchScore = 100
	}
	if q.SortBy == "" {
		q.SortBy = SortMatchScore
	}
	return q
}

func (q Query) params(pageSize int) api.JobsParams {
	return api.JobsParams{
		Keyword:  q.Keyword,
		Location: q.Location,
		Skip:     (q.Page - 1) * pageSize,
		Limit:    pageSize,
	}
}

// refine applies the client-only filters and the sort order to one fetched
// page. The server knows nothing about these, so they never affect paging.
func refine(q Query, in []api.JobSummary) []api.JobSummary {
	out := make([]api.JobSummary, 0, len(in))
	for _, j := range in {
		if q.Remote && !j.IsRemote {
			continue
		}
		if q.FullTime && !strings.Contains(strings.ToLower(j.JobType), "full") {
			continue
		}
		if q.ExcludeScams && j.IsScam {
			continue
		}
		if j.MatchScore < q.MinMatchScore {
			continue
		}
		out = append(out, j)
	}

	switch q.SortBy {
	case SortPostedDate:
		sort.SliceStable(out, func(i, k int) bool {
			return postedAfter(out[i].PostedDate, out[k].PostedDate)
		})
	default:
		sort.SliceStable(out, func(i, k int) bool {
			return out[i].MatchScore > out[k].MatchScore
		})
	}
	return out
}

func postedAfter(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}
