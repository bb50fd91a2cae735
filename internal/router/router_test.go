package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/config"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/delivery"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/handler"
	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/statement"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) Send(context.Context, interfaces.Mail) error {
	m.sent++
	return m.err
}

type testServer struct {
	handler   http.Handler
	mailer    *stubMailer
	mailerErr error
	outputDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	format, err := statement.NewFormatter("en-IN", "INR")
	require.NoError(t, err)

	s := &testServer{
		mailer:    &stubMailer{},
		outputDir: filepath.Join(t.TempDir(), "generated-ledgers"),
	}
	l := ledger.NewLedger(memory.NewSeededStore())
	pipeline := delivery.NewPipeline(delivery.Config{
		Ledger:   l,
		Renderer: statement.NewPDFRenderer(format),
		NewMailer: func() (interfaces.Mailer, error) {
			if s.mailerErr != nil {
				return nil, s.mailerErr
			}
			return s.mailer, nil
		},
		FinancialYear: ledger.NewFinancialYear(time.Date(2024, time.May, 20, 9, 0, 0, 0, time.Local)),
		OutputDir:     s.outputDir,
	})
	logger := zap.NewNop()
	h := handler.NewStatementHandler(pipeline, l, format, logger)
	s.handler = SetupRoutes(chi.NewRouter(), h, logger)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func sendBody() map[string]string {
	return map[string]string{
		"partyId": "abc-co",
		"email":   "accounts@abccompany.com",
		"subject": delivery.DefaultSubject,
		"body":    delivery.DefaultBody,
	}
}

func TestSendEmailSuccess(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodPost, "/api/send-email", sendBody())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Email sent successfully with Ledger attachment!", body["message"])
	path := filepath.Join(s.outputDir, "Ledger_ABC_Company_Ltd.pdf")
	assert.Equal(t, path, body["filePath"])
	assert.Equal(t, 1, s.mailer.sent)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSendEmailMissingEmail(t *testing.T) {
	s := newTestServer(t)
	payload := sendBody()
	delete(payload, "email")

	rec, body := s.do(t, http.MethodPost, "/api/send-email", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
	assert.NoDirExists(t, s.outputDir)
	assert.Zero(t, s.mailer.sent)
}

func TestSendEmailUnknownParty(t *testing.T) {
	s := newTestServer(t)
	payload := sendBody()
	payload["partyId"] = "ghost-co"

	rec, body := s.do(t, http.MethodPost, "/api/send-email", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select a Party Ledger", body["error"])
	assert.NoDirExists(t, s.outputDir)
}

func TestSendEmailMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodPost, "/api/send-email", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestSendEmailServerErrors(t *testing.T) {
	t.Run("configuration", func(t *testing.T) {
		s := newTestServer(t)
		s.mailerErr = config.ErrSMTPConfigIncomplete

		rec, body := s.do(t, http.MethodPost, "/api/send-email", sendBody())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, config.ErrSMTPConfigIncomplete.Error(), body["error"])
	})
	t.Run("delivery", func(t *testing.T) {
		s := newTestServer(t)
		s.mailer.err = errors.New("dial tcp: connection refused")

		rec, body := s.do(t, http.MethodPost, "/api/send-email", sendBody())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "dial tcp: connection refused", body["error"])
	})
}

func TestListParties(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parties", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var parties []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parties))
	require.Len(t, parties, 3)
	assert.Equal(t, "abc-co", parties[0]["id"])
}

func TestGetLedgerPreview(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/api/parties/xyz-traders/ledger", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "INR", body["currency"])
	fy := body["financialYear"].(map[string]any)
	assert.Equal(t, "2024-2025", fy["label"])

	entries := body["entries"].([]any)
	require.Len(t, entries, 2)
	second := entries[1].(map[string]any)
	assert.Equal(t, "15/5/2024", second["date"])
	assert.Equal(t, []any{"₹50,000.00", "-", "₹34,500.00"}, second["display"])
}

func TestGetLedgerUnknownParty(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/parties/ghost-co/ledger", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmailTemplate(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/api/parties/prime-industries/email-template", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ap@primeindustries.in", body["email"])
	assert.Equal(t, "Tax Invoice & Ledger Statement", body["subject"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
