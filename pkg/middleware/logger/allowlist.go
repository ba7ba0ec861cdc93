package logger

import (
	"net/http"
	"strings"
	"sync"
)

var (
	bodyLogMu       sync.RWMutex
	bodyLogPrefixes = map[string]struct{}{}
)

// AddBodyLogPaths extends the set of path prefixes whose request bodies are
// logged. The set starts empty.
func AddBodyLogPaths(paths ...string) {
	bodyLogMu.Lock()
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			bodyLogPrefixes[p] = struct{}{}
		}
	}
	bodyLogMu.Unlock()
}

// Only small POST/PUT bodies on allowlisted paths; student names are plain text.
func shouldLogBody(r *http.Request, body []byte) bool {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return false
	}
	if len(body) == 0 || len(body) > 1<<16 { // 64 KiB cap
		return false
	}
	bodyLogMu.RLock()
	defer bodyLogMu.RUnlock()
	for p := range bodyLogPrefixes {
		if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p+"/") {
			return true
		}
	}
	return false
}
