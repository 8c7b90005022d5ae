package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func parseToast(t *testing.T, trigger string) map[string]string {
	t.Helper()
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	raw, ok := parsed["showToast"]
	if !ok {
		t.Fatal("expected showToast key in HX-Trigger JSON")
	}
	var toast map[string]string
	if err := json.Unmarshal(raw, &toast); err != nil {
		t.Fatalf("showToast value is not valid JSON: %v", err)
	}
	return toast
}

func TestSetToast_Types(t *testing.T) {
	tests := []struct {
		name      string
		toastType string
		message   string
	}{
		{"success", ToastSuccess, "12 etiquetas geradas"},
		{"error", ToastError, "Não foi possível ler a planilha"},
		{"info", ToastInfo, "Nenhuma etiqueta gerada"},
		{"special characters", ToastInfo, `<script>"PROXIMO\nBR1"</script>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec

			SetToast(e, tt.toastType, tt.message)

			toast := parseToast(t, rec.Header().Get("HX-Trigger"))
			if toast["type"] != tt.toastType {
				t.Errorf("expected type %q, got %q", tt.toastType, toast["type"])
			}
			if toast["message"] != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, toast["message"])
			}
		})
	}
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", `{"labelsReady":{"count":"3"}}`)

	SetToast(e, ToastSuccess, "Merged toast")

	trigger := rec.Header().Get("HX-Trigger")
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := parsed["labelsReady"]; !ok {
		t.Error("expected labelsReady key to be preserved after merge")
	}
	if toast := parseToast(t, trigger); toast["message"] != "Merged toast" {
		t.Errorf("expected merged message, got %q", toast["message"])
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", "notValidJSON")

	SetToast(e, ToastError, "Overwritten")

	if toast := parseToast(t, rec.Header().Get("HX-Trigger")); toast["message"] != "Overwritten" {
		t.Errorf("expected message %q, got %q", "Overwritten", toast["message"])
	}
}

func TestSetToast_FlashCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	SetToast(e, ToastSuccess, "Lista importada")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "flash_toast" {
		t.Fatalf("expected flash_toast cookie, got %+v", cookies)
	}
	raw, err := url.QueryUnescape(cookies[0].Value)
	if err != nil {
		t.Fatalf("cookie is not query-escaped: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("cookie is not JSON: %v", err)
	}
	if payload["message"] != "Lista importada" || payload["type"] != ToastSuccess {
		t.Errorf("payload = %v", payload)
	}
}

func TestErrorToast_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		msg  string
	}{
		{"bad request", http.StatusBadRequest, "Envie a planilha de remessas"},
		{"server error", http.StatusInternalServerError, "Algo deu errado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec

			if err := ErrorToast(e, tt.code, tt.msg); err != nil {
				t.Fatalf("ErrorToast returned error: %v", err)
			}
			if rec.Code != tt.code {
				t.Errorf("expected status %d, got %d", tt.code, rec.Code)
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap: none")
			}
			if rec.Body.String() != tt.msg {
				t.Errorf("expected body %q, got %q", tt.msg, rec.Body.String())
			}
			if toast := parseToast(t, rec.Header().Get("HX-Trigger")); toast["type"] != ToastError {
				t.Errorf("expected error toast, got %q", toast["type"])
			}
		})
	}
}

func TestMergeTrigger(t *testing.T) {
	payload := map[string]string{"message": "m", "type": ToastInfo}

	got, err := mergeTrigger("", payload)
	if err != nil {
		t.Fatalf("mergeTrigger() error = %v", err)
	}
	if got != `{"showToast":{"message":"m","type":"info"}}` {
		t.Errorf("mergeTrigger() = %s", got)
	}

	if _, err := mergeTrigger("{broken", payload); err == nil {
		t.Error("expected parse error for invalid existing trigger")
	}
}
