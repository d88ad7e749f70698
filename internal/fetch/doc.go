// Package fetch retrieves the page that is evaluated.
//
// A Fetcher performs exactly one GET request per call. It measures the time
// until the body has been read, decodes the body to UTF-8 according to the
// response Content-Type, and turns every non-200 response into a
// *StatusError. Transport failures are returned wrapped. There are no
// retries.
package fetch
