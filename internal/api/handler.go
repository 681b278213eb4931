// Package api exposes the extraction pipeline over HTTP for collaborators
// that capture page text remotely and want the parsing done server-side.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/starascendin/lifeos-finance/internal/buildinfo"
	"github.com/starascendin/lifeos-finance/internal/ledger"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/networth"
	"github.com/starascendin/lifeos-finance/internal/parser"
)

// ExtractRequest is the JSON body for /api/extract: the captures from one
// page session plus any intercepted API responses.
type ExtractRequest struct {
	Captures    []models.RawCapture   `json:"captures"`
	APICaptures []networth.APICapture `json:"apiCaptures,omitempty"`
}

// AccountError reports a capture that could not be assembled. The rest of
// the batch still succeeds.
type AccountError struct {
	AccountIdentifier string `json:"accountIdentifier"`
	Error             string `json:"error"`
}

// ExtractResponse is the JSON response from /api/extract.
type ExtractResponse struct {
	Success  bool                    `json:"success"`
	Error    string                  `json:"error,omitempty"`
	Accounts []models.AccountRecord  `json:"accounts"`
	Totals   ledger.Totals           `json:"totals"`
	Stats    parser.Stats            `json:"stats"`
	History  []networth.HistoryPoint `json:"netWorthHistory,omitempty"`
	Errors   []AccountError          `json:"errors,omitempty"`
	Count    int                     `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	assembler *ledger.Assembler
	log       zerolog.Logger
}

// NewHandler builds a Handler around an assembler.
func NewHandler(assembler *ledger.Assembler, log zerolog.Logger) *Handler {
	return &Handler{assembler: assembler, log: log}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/extract", h.HandleExtract)
}

// HandleHealth reports liveness and build metadata.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// HandleExtract runs the parse/classify/assemble pipeline over a batch of
// captures. Per-account failures are reported, not fatal.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	var req ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{
			Error:    "invalid JSON body: " + err.Error(),
			Accounts: []models.AccountRecord{},
		})
	}
	if len(req.Captures) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{
			Error:    "no captures provided",
			Accounts: []models.AccountRecord{},
		})
	}

	collection := ledger.NewCollection()
	var stats parser.Stats
	var accountErrs []AccountError

	for _, capture := range req.Captures {
		result, err := h.assembler.Assemble(capture)
		if err != nil {
			if !errors.Is(err, ledger.ErrEmptySection) {
				h.log.Error().Err(err).Str("account", capture.AccountIdentifier).Msg("assembly failed")
			}
			accountErrs = append(accountErrs, AccountError{
				AccountIdentifier: capture.AccountIdentifier,
				Error:             err.Error(),
			})
			continue
		}
		stats.Merge(result.Stats)
		collection.Add(result.Record)
	}

	resp := ExtractResponse{
		Success:  true,
		Accounts: collection.Records(),
		Totals:   collection.Totals(),
		Stats:    stats,
		Errors:   accountErrs,
		Count:    len(collection.Records()),
	}
	if len(req.APICaptures) > 0 {
		resp.History = networth.ExtractHistory(networth.CaptureLog{Captures: req.APICaptures})
	}
	return c.JSON(resp)
}
