package httptransport

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hask/internal/profile"
	dErrors "hask/pkg/domain-errors"
	"hask/pkg/platform/httputil"
)

func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Avatar == "" {
		req.Avatar = defaultAvatar
	}
	if req.Banner == "" {
		req.Banner = defaultBanner
	}

	p, err := h.profiles.Register(r.Context(), profile.RegisterParams{
		Username: req.Username,
		Name:     req.Name,
		Handle:   req.Handle,
		Bio:      req.Bio,
		LinkedIn: req.LinkedIn,
		GitHub:   req.GitHub,
		City:     req.City,
		Country:  req.Country,
		Avatar:   req.Avatar,
		Banner:   req.Banner,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"username": p.Username,
		"address":  p.Address,
	})
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	p, err := h.profiles.Lookup(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	type entry struct {
		Username string `json:"username"`
		Address  string `json:"address"`
	}
	out := make([]entry, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, entry{Username: p.Username, Address: p.Address})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username is required"))
		return
	}
	p, err := h.profiles.Lookup(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"address": p.Address})
}

// handlePeople renders the marketplace listing: every profile, tokenized or
// not, in registration order.
func (h *Handler) handlePeople(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	type person struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Handle     string `json:"handle"`
		Image      string `json:"image"`
		Tagline    string `json:"tagline"`
		Price      int64  `json:"price"`
		Confidence int    `json:"confidence"`
		AssetID    uint64 `json:"asset_id,omitempty"`
		Address    string `json:"address,omitempty"`
	}
	out := make([]person, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, person{
			ID:         p.Username,
			Name:       p.Name,
			Handle:     p.Handle,
			Image:      p.Avatar,
			Tagline:    p.Bio,
			Price:      p.Valuation,
			Confidence: p.Confidence,
			AssetID:    p.AssetID,
			Address:    p.Address,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleSuggestHandle(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	handle, err := h.profiles.SuggestHandle(r.Context(), name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"handle": handle})
}

// handleSuggestAvatar hands out a deterministic placeholder portrait for a
// seed, so repeated calls for the same name render the same face.
func (h *Handler) handleSuggestAvatar(w http.ResponseWriter, r *http.Request) {
	seed := r.URL.Query().Get("seed")
	if seed == "" {
		seed = "user"
	}
	var sum int
	for _, c := range seed {
		sum += int(c)
	}
	img := sum%70 + 1
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"avatar": fmt.Sprintf("https://i.pravatar.cc/200?img=%d", img),
	})
}
