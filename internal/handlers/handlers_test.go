package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"heroic/ats-platform/internal/models"
	"heroic/ats-platform/internal/services"
)

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload models.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return payload
}

func TestRespondMapsKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expose     bool
		wantStatus int
		wantKind   services.ErrorKind
		wantDetail string
	}{
		{
			name:       "invalid input",
			err:        &services.AnalysisError{Kind: services.KindInvalidInput, Message: services.MsgOnlyPDF},
			expose:     true,
			wantStatus: http.StatusBadRequest,
			wantKind:   services.KindInvalidInput,
			wantDetail: services.MsgOnlyPDF,
		},
		{
			name:       "upstream with details",
			err:        &services.AnalysisError{Kind: services.KindUpstreamFailure, Message: "An error occurred", Err: errors.New("quota exhausted")},
			expose:     true,
			wantStatus: http.StatusInternalServerError,
			wantKind:   services.KindUpstreamFailure,
			wantDetail: "An error occurred: quota exhausted",
		},
		{
			name:       "upstream without details",
			err:        &services.AnalysisError{Kind: services.KindUpstreamFailure, Message: "An error occurred", Err: errors.New("quota exhausted")},
			expose:     false,
			wantStatus: http.StatusInternalServerError,
			wantKind:   services.KindUpstreamFailure,
			wantDetail: "An error occurred",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			expose:     false,
			wantStatus: http.StatusInternalServerError,
			wantKind:   services.KindInternal,
			wantDetail: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := NewErrorResponder(tt.expose)
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return responder.Respond(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}

			payload := decodeError(t, resp)
			if payload.Kind != string(tt.wantKind) {
				t.Errorf("kind = %q, want %q", payload.Kind, tt.wantKind)
			}
			if payload.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", payload.Detail, tt.wantDetail)
			}
			if payload.Code != tt.wantStatus {
				t.Errorf("code = %d, want %d", payload.Code, tt.wantStatus)
			}
		})
	}
}

func TestFiberErrorHandlerUnknownRoute(t *testing.T) {
	responder := NewErrorResponder(true)
	app := fiber.New(fiber.Config{ErrorHandler: responder.FiberErrorHandler})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	payload := decodeError(t, resp)
	if payload.Kind != string(services.KindInvalidInput) {
		t.Errorf("kind = %q, want %q", payload.Kind, services.KindInvalidInput)
	}
}

func TestSessionIDPrecedence(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		return c.SendString(sessionID(c))
	})

	tests := []struct {
		name   string
		form   string
		query  string
		header string
		want   string
	}{
		{name: "form wins", form: "form-id", query: "query-id", header: "header-id", want: "form-id"},
		{name: "query before header", query: "query-id", header: "header-id", want: "query-id"},
		{name: "header only", header: " header-id ", want: "header-id"},
		{name: "none", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?session_id=" + tt.query
			}

			var body io.Reader
			if tt.form != "" {
				body = strings.NewReader("session_id=" + tt.form)
			}
			req := httptest.NewRequest(http.MethodPost, target, body)
			if tt.form != "" {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if tt.header != "" {
				req.Header.Set(sessionHeader, tt.header)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			got, _ := io.ReadAll(resp.Body)
			if string(got) != tt.want {
				t.Fatalf("sessionID = %q, want %q", got, tt.want)
			}
		})
	}
}
