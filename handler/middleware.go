package handler

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/felixge/httpsnoop"
)

// accessLog writes one line per request with the final status code.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		logRequest(r, m.Code)
		log.Debugf("%s %s served in %s", r.Method, r.URL.Path, m.Duration)
	})
}

// recoverPanic turns a panic in a handler into the generic JSON apology.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logAndReturnError(w, msgSomethingWrong, http.StatusInternalServerError,
					fmt.Sprintf("Server error: panic: %v\n%s", rec, debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
