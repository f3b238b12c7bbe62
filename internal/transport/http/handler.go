// Package httptransport is the thin HTTP layer over the workflow services.
// Handlers decode, delegate, and encode; business rules live in the service
// packages.
package httptransport

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"hask/internal/invest"
	"hask/internal/profile"
)

// Handler holds the services the routes delegate to.
type Handler struct {
	profiles *profile.Registry
	invest   *invest.Service
	logger   *slog.Logger
}

func NewHandler(profiles *profile.Registry, investSvc *invest.Service, logger *slog.Logger) *Handler {
	return &Handler{profiles: profiles, invest: investSvc, logger: logger}
}

// Register wires all public endpoints. Paths match the API the reference
// frontend consumes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/suggest/handle", h.handleSuggestHandle)
	r.Get("/suggest/avatar", h.handleSuggestAvatar)

	r.Post("/account", h.handleCreateAccount)
	r.Get("/account/{username}", h.handleGetAccount)
	r.Get("/accounts", h.handleListAccounts)
	r.Get("/wallet", h.handleGetWallet)
	r.Get("/people", h.handlePeople)

	r.Post("/localnet_account", h.handleProvisionAccount)
	r.Post("/profile/create_asa", h.handleTokenizeProfile)

	r.Post("/asset/opt_in", h.handleOptIn)
	r.Post("/asset/transfer", h.handleTransfer)

	r.Post("/invest/request", h.handleInvestRequest)
	r.Get("/notifications", h.handleListNotifications)
	r.Post("/invest/decision", h.handleInvestDecision)

	r.Get("/tx/{txid}", h.handleTxStatus)
}
