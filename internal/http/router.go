package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	ApplyRate     http.Handler
	ConvertedRate http.Handler
	Health        http.HandlerFunc
}

// NewRouter registers service endpoints; rate endpoints sit behind the auth
// middleware.
func NewRouter(routes Routes, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.ApplyRate != nil {
		mux.Handle("/api/v1/rate", method(http.MethodPost, auth(routes.ApplyRate)))
	}
	if routes.ConvertedRate != nil {
		mux.Handle("/api/v1/rate/converted-rate", method(http.MethodGet, auth(routes.ConvertedRate)))
	}
	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
