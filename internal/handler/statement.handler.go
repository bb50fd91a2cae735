package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/delivery"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/ledger"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/response"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/statement"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxRequestBytes = 1 << 20

type StatementHandler struct {
	pipeline *delivery.Pipeline
	ledger   *ledger.Ledger
	format   *statement.Formatter
	logger   *zap.Logger
}

func NewStatementHandler(
	pipeline *delivery.Pipeline,
	l *ledger.Ledger,
	format *statement.Formatter,
	logger *zap.Logger,
) *StatementHandler {
	return &StatementHandler{
		pipeline: pipeline,
		ledger:   l,
		format:   format,
		logger:   logger,
	}
}

type sendEmailResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

// HandleSendEmail renders, saves and mails a party's statement.
func (h *StatementHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req delivery.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		h.logger.Warn("invalid send-email body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome := h.pipeline.Send(r.Context(), req)
	if sent, ok := outcome.(delivery.Sent); ok {
		response.JSON(w, http.StatusOK, sendEmailResponse{
			Success:  true,
			Message:  sent.Message(),
			FilePath: sent.FilePath,
		})
		return
	}

	status := http.StatusInternalServerError
	if outcome.ClientFault() {
		status = http.StatusBadRequest
	}
	response.Error(w, status, outcome.Message())
}

func (h *StatementHandler) HandleListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.ledger.ListParties(r.Context())
	if err != nil {
		h.logger.Error("list parties failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load parties")
		return
	}
	response.JSON(w, http.StatusOK, parties)
}

type ledgerRow struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Reference   string          `json:"reference"`
	Particulars string          `json:"particulars"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Display     [3]string       `json:"display"` // debit, credit, balance as printed on the statement
}

type ledgerPreview struct {
	Party         models.Party         `json:"party"`
	FinancialYear models.FinancialYear `json:"financialYear"`
	Currency      string               `json:"currency"`
	Entries       []ledgerRow          `json:"entries"`
}

// HandleGetLedger previews what the statement for a party will contain.
func (h *StatementHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	party, ok := h.findParty(w, r)
	if !ok {
		return
	}

	entries, err := h.ledger.GetLedgerForParty(ctx, party.ID)
	if err != nil {
		h.logger.Error("load ledger failed", zap.String("party_id", party.ID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load ledger")
		return
	}

	rows := make([]ledgerRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ledgerRow{
			ID:          e.ID,
			Date:        h.format.Date(e.Date),
			Reference:   e.Reference,
			Particulars: e.Particulars,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     e.Balance,
			Display: [3]string{
				h.format.Amount(e.Debit),
				h.format.Amount(e.Credit),
				h.format.Money(e.Balance),
			},
		})
	}

	response.JSON(w, http.StatusOK, ledgerPreview{
		Party:         party,
		FinancialYear: h.pipeline.FinancialYear(),
		Currency:      h.format.CurrencyCode(),
		Entries:       rows,
	})
}

type emailTemplate struct {
	PartyID string `json:"partyId"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// HandleEmailTemplate returns the prefilled send form for a party.
func (h *StatementHandler) HandleEmailTemplate(w http.ResponseWriter, r *http.Request) {
	party, ok := h.findParty(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, emailTemplate{
		PartyID: party.ID,
		Email:   party.Email,
		Subject: delivery.DefaultSubject,
		Body:    delivery.DefaultBody,
	})
}

func (h *StatementHandler) findParty(w http.ResponseWriter, r *http.Request) (models.Party, bool) {
	partyID := chi.URLParam(r, "partyID")
	party, found, err := h.ledger.FindParty(r.Context(), partyID)
	if err != nil {
		h.logger.Error("find party failed", zap.String("party_id", partyID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load party")
		return models.Party{}, false
	}
	if !found {
		response.Error(w, http.StatusNotFound, "Party not found")
		return models.Party{}, false
	}
	return party, true
}
