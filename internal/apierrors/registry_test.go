package apierrors

import (
	"net/http"
	"testing"
)

func TestRegistry_CodesRegistered(t *testing.T) {
	// Codes should be registered via init()
	codes := Registry.All()
	if len(codes) == 0 {
		t.Fatal("No codes registered")
	}

	mustExist := []string{
		CodeInvalidRequest,
		CodeNotFound,
		CodeInternalError,
		CodeInvalidDateFormat,
		CodeInvalidDateRange,
		CodeFetchFailed,
		CodeWriteFailed,
	}

	for _, code := range mustExist {
		if _, ok := Registry.Get(code); !ok {
			t.Errorf("Code %q not registered", code)
		}
	}
}

func TestRegistry_Namespacing(t *testing.T) {
	// All export codes should be in the "export" namespace
	exportCodes := Registry.ByNamespace("export")
	if len(exportCodes) == 0 {
		t.Fatal("No codes in 'export' namespace")
	}

	for _, code := range exportCodes {
		if len(code.Code) < 7 || code.Code[:7] != "export:" {
			t.Errorf("Code %q should have 'export:' prefix", code.Code)
		}
	}
}

func TestRegistry_HTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{CodeInvalidRequest, http.StatusBadRequest},
		{CodeInvalidDateFormat, http.StatusBadRequest},
		{CodeInvalidDateRange, http.StatusBadRequest},
		{CodeFetchFailed, http.StatusInternalServerError},
		{CodeWriteFailed, http.StatusInternalServerError},
		{CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Registry.HTTPStatus(tt.code); got != tt.status {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.status)
			}
		})
	}
}

func TestRegistry_UnknownCode(t *testing.T) {
	// Unknown code should return 500 status
	status := Registry.HTTPStatus("unknown:code")
	if status != http.StatusInternalServerError {
		t.Errorf("HTTPStatus for unknown code = %d, want %d", status, http.StatusInternalServerError)
	}

	// Unknown code message should be the code itself
	msg := Registry.Message("unknown:code")
	if msg != "unknown:code" {
		t.Errorf("Message for unknown code = %q, want %q", msg, "unknown:code")
	}
}
