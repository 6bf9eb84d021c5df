package httputil

import "net/http"

// JSONHeaders returns the headers used for JSON API requests.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, br")
	return h
}
