package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// Toast types understood by the page script.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX, merging into any HX-Trigger already set.
// It also sets a flash cookie so toasts survive regular (non-HTMX) form posts
// such as the export downloads.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	trigger, err := mergeTrigger(e.Response.Header().Get("HX-Trigger"), payload)
	if err != nil {
		logger(e).Warn("toast: existing HX-Trigger is not valid JSON, overwriting", "error", err)
	}
	if trigger != "" {
		e.Response.Header().Set("HX-Trigger", trigger)
	}

	cookieVal, err := json.Marshal(payload)
	if err != nil {
		logger(e).Error("toast: failed to marshal flash cookie", "error", err)
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // JS needs to read it
		SameSite: http.SameSiteLaxMode,
	})
}

// mergeTrigger returns existing with showToast set to payload. An invalid
// existing value is replaced and reported.
func mergeTrigger(existing string, payload map[string]string) (string, error) {
	merged := map[string]any{}
	var parseErr error
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			parseErr = err
			merged = map[string]any{}
		}
	}
	merged["showToast"] = payload

	data, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(data), parseErr
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// logger returns the application logger of the request, falling back to the
// default logger for events built without an app.
func logger(e *core.RequestEvent) *slog.Logger {
	if e.App == nil {
		return slog.Default()
	}
	return e.App.Logger()
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}
