package middleware

import (
	"fmt"
	"net/http"
	"parts-storefront/internal/logger"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// ErrorPage renders an HTML error page.
type ErrorPage interface {
	RenderError(w http.ResponseWriter, r *http.Request, code int, message string) error
}

// Error is a middleware that converts handler errors into responses. With a nil
// ErrorPage the body is the plain-text message, which is what the XML and JSON
// routes use; otherwise an HTML error page is rendered.
func Error(log logger.Logger, pages ErrorPage) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					writeError(w, r, pages, http.StatusInternalServerError, "Internal Server Error")
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			if appErr.Code >= http.StatusInternalServerError {
				log.Error(appErr.Error, appErr.Message)
			} else {
				log.Debug(fmt.Sprintf("%s %s: %d %s", r.Method, r.URL.Path, appErr.Code, appErr.Message))
			}
			writeError(w, r, pages, appErr.Code, appErr.Message)
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, pages ErrorPage, code int, message string) {
	h := w.Header()
	h.Del("Cache-Control")
	h.Del("Content-Length")
	h.Del("Content-Type")
	if pages != nil {
		if err := pages.RenderError(w, r, code, message); err == nil {
			return
		}
	}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	fmt.Fprint(w, message)
}
