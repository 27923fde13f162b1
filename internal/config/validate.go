package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything worth telling
// the user about before the client starts talking to the backend.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Backend.Host = strings.TrimSpace(out.Backend.Host)
	out.Scrape.Region = strings.TrimSpace(out.Scrape.Region)
	out.Scrape.Role = strings.TrimSpace(out.Scrape.Role)

	if out.Backend.Host == "" {
		res.addErr("backend.host is required")
	} else if u, err := url.Parse(out.Backend.Host); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("backend.host must be a URL with a scheme, got %q", cfg.Backend.Host)
	}

	if out.Backend.TimeoutSeconds <= 0 {
		out.Backend.TimeoutSeconds = Default().Backend.TimeoutSeconds
	} else if out.Backend.TimeoutSeconds < 5 {
		res.addWarn("backend.timeout_seconds is very low (%d); generated content can take longer.", out.Backend.TimeoutSeconds)
	}

	if out.Backend.RequestsPerSec <= 0 {
		out.Backend.RequestsPerSec = Default().Backend.RequestsPerSec
	}

	if out.Listing.PageSize <= 0 {
		out.Listing.PageSize = Default().Listing.PageSize
	} else if out.Listing.PageSize > 100 {
		res.addWarn("listing.page_size is %d; the backend caps list responses at 100.", out.Listing.PageSize)
	}

	return out, res
}
