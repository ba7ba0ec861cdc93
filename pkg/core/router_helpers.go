package core

import (
	"net/http"
	"strconv"
)

const textPlain = "text/plain; charset=utf-8"

func writeText(w http.ResponseWriter, payload string, status int, contentType string) {
	if contentType == "" {
		contentType = textPlain
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(payload))
}
