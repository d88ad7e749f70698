package model

import "time"

// PageSample is the result of fetching the evaluated page.
// It is built once per evaluation and never modified afterwards.
type PageSample struct {
	// URL is the address the page was fetched from.
	URL string `json:"url"`

	// Title is the content of the page's <title> element, if any.
	Title string `json:"title,omitempty"`

	// Content is the response body decoded to UTF-8.
	Content string `json:"-"`

	// ContentSize is the number of characters in Content.
	ContentSize int `json:"content_size"`

	// LoadTime is the wall-clock time from sending the request until
	// the body was fully read.
	LoadTime time.Duration `json:"load_time"`

	// HTTPStatus is the response status code.
	HTTPStatus int `json:"http_status"`

	// FetchedAt is when the request was sent.
	FetchedAt time.Time `json:"fetched_at"`
}

// LoadTimeSeconds returns LoadTime as fractional seconds.
func (s PageSample) LoadTimeSeconds() float64 {
	return s.LoadTime.Seconds()
}
