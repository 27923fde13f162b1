package api

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// The listing endpoint has drifted between a {data: [...], total: N} envelope
// and a bare array across backend revisions. Both are accepted; anything else
// decodes to an empty page rather than an error, so a backend shape change
// degrades to "no jobs" instead of breaking the view.
func decodeJobPage(b []byte) JobPage {
	root := gjson.ParseBytes(b)

	var raw string
	switch {
	case root.IsArray():
		raw = root.Raw
	case root.Get("data").IsArray():
		raw = root.Get("data").Raw
	default:
		return JobPage{}
	}

	var items []JobSummary
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return JobPage{}
	}

	total := len(items)
	if t := root.Get("total"); t.Exists() {
		total = int(t.Int())
	}
	return JobPage{Items: items, Total: total}
}

// firstString picks the first present string field out of a response whose
// key name is not stable across backend versions. Falls back to the raw body
// when the response is not JSON at all.
func firstString(b []byte, keys ...string) string {
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		s := root.String()
		if s != "" && root.Type == gjson.String {
			return s
		}
		return string(b)
	}
	for _, k := range keys {
		if v := root.Get(k); v.Exists() {
			return v.String()
		}
	}
	return string(b)
}

// stringList accepts {key: [...]} or a bare array of strings.
func stringList(b []byte, key string) []string {
	root := gjson.ParseBytes(b)
	arr := root
	if !root.IsArray() {
		arr = root.Get(key)
	}
	if !arr.IsArray() {
		return nil
	}
	var out []string
	arr.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
