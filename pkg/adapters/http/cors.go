// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"strings"
)

const corsAllowMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

// cors applies the browser cross-origin policy. Credentials are allowed,
// so a wildcard is answered by echoing the request origin.
type cors struct {
	any     bool
	origins map[string]bool
}

func newCORS(allowOrigins []string) *cors {
	c := &cors{origins: make(map[string]bool)}
	for _, o := range allowOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			c.any = true
		} else if o != "" {
			c.origins[o] = true
		}
	}
	return c
}

func (c *cors) allowed(origin string) bool {
	return c.any || c.origins[origin]
}

// handle sets the CORS headers and answers preflight requests. It reports
// whether the request should continue to the router.
func (c *cors) handle(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	w.Header().Add("Vary", "Origin")

	preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
	if !c.allowed(origin) {
		if preflight {
			http.Error(w, "Disallowed CORS origin", http.StatusBadRequest)
			return false
		}
		return true
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Credentials", "true")
	if !preflight {
		return true
	}

	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
		h.Set("Access-Control-Allow-Headers", reqHeaders)
	}
	h.Set("Access-Control-Max-Age", "600")
	w.WriteHeader(http.StatusNoContent)
	return false
}
