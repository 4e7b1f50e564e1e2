package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
)

func logRequest(req *http.Request, status int) {
	log.Infof("%s -- %s -- %s -- %d", req.RemoteAddr, req.Method, req.URL.Path, status)
}

// writeJSON encodes v without HTML escaping so generated text is relayed
// byte-for-byte.
func writeJSON(w http.ResponseWriter, code int, v any) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Something went wrong. Please try again!"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

func logAndReturnError(w http.ResponseWriter, httpResponseStr string, code int, consoleStr ...string) {
	// consoleStr is optional.
	if len(consoleStr) > 0 {
		log.Errorln(consoleStr[0])
	} else {
		log.Errorln(httpResponseStr)
	}
	writeJSON(w, code, ErrorResponse{Error: httpResponseStr})
}
