package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hask/internal/asset"
	"hask/internal/invest"
	dErrors "hask/pkg/domain-errors"
	"hask/pkg/platform/httputil"
)

func (h *Handler) handleProvisionAccount(w http.ResponseWriter, r *http.Request) {
	var req localnetAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Username == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username is required"))
		return
	}
	res, err := h.invest.ProvisionAccount(r.Context(), req.Username, req.Fund)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"address": res.Address,
		"funded":  res.Funded,
		"balance": res.Balance,
	})
}

func (h *Handler) handleTokenizeProfile(w http.ResponseWriter, r *http.Request) {
	var req createAsaRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Username == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username is required"))
		return
	}
	res, err := h.invest.TokenizeProfile(r.Context(), req.Username, asset.Spec{
		AssetName: req.AssetName,
		UnitName:  req.UnitName,
		Total:     req.Total,
		Decimals:  req.Decimals,
		URL:       req.URL,
		Note:      req.Note,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"addr":     res.Address,
		"asset_id": res.AssetID,
		"txid":     res.TxID,
		"lora_url": h.invest.TxURL(res.TxID),
		"url":      h.invest.AssetURL(res.AssetID),
		"me":       res.Me,
	})
}

func (h *Handler) handleOptIn(w http.ResponseWriter, r *http.Request) {
	var req optInRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Username == "" || req.AssetID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username and asset_id are required"))
		return
	}
	txID, err := h.invest.OptIn(r.Context(), req.Username, req.AssetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"txid":     txID,
		"lora_url": h.invest.TxURL(txID),
	})
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	txID, err := h.invest.Transfer(r.Context(), invest.TransferParams{
		Sender:   req.SenderUsername,
		Receiver: req.ReceiverUsername,
		AssetID:  req.AssetID,
		Amount:   req.Amount,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"txid":      txID,
		"lora_url":  h.invest.TxURL(txID),
		"asset_url": h.invest.AssetURL(req.AssetID),
	})
}

func (h *Handler) handleInvestRequest(w http.ResponseWriter, r *http.Request) {
	var req investRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	filed, err := h.invest.RequestInvestment(r.Context(), invest.RequestParams{
		Requester: req.BuyerUsername,
		Recipient: req.SellerUsername,
		AssetID:   req.AssetID,
		Amount:    req.Amount,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"notification_id": filed.ID,
		"status":          filed.Status,
		"message":         "investment request sent",
	})
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username is required"))
		return
	}
	list, err := h.invest.Notifications(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"notifications": list})
}

func (h *Handler) handleInvestDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.SellerUsername == "" || req.NotificationID == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "seller_username and notification_id are required"))
		return
	}
	decided, err := h.invest.DecideInvestment(r.Context(), req.SellerUsername, req.NotificationID, req.Accept)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body := map[string]any{"status": decided.Status}
	if decided.TxID != "" {
		body["txid"] = decided.TxID
		body["lora_url"] = h.invest.TxURL(decided.TxID)
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) handleTxStatus(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "txid")
	confirmed := h.invest.Confirmed(r.Context(), txID)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"txid":      txID,
		"confirmed": confirmed,
		"lora_url":  h.invest.TxURL(txID),
	})
}
