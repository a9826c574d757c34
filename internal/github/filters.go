package github

import (
	"net/url"
	"strconv"
)

type RunsFilter struct {
	Branch  string
	HeadSHA string
	PerPage int
	Page    int
}

func (f RunsFilter) QueryString() string {
	v := url.Values{}
	if f.Branch != "" {
		v.Set("branch", f.Branch)
	}
	if f.HeadSHA != "" {
		v.Set("head_sha", f.HeadSHA)
	}
	if f.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(f.PerPage))
	} else {
		v.Set("per_page", "30")
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return "?" + v.Encode()
}

type JobsFilter struct {
	PerPage int
	Page    int
}

func (f JobsFilter) QueryString() string {
	v := url.Values{}
	if f.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(f.PerPage))
	} else {
		v.Set("per_page", "100")
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return "?" + v.Encode()
}
