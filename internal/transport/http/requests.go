package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "hask/pkg/domain-errors"
)

const (
	defaultAvatar = "https://i.pravatar.cc/200?img=60"
	defaultBanner = "https://images.unsplash.com/photo-1526948128573-703ee1aeb6fa?q=80&w=1600&auto=format&fit=crop"
)

type createAccountRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Bio      string `json:"bio"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Avatar   string `json:"avatar"`
	Banner   string `json:"banner"`
}

type localnetAccountRequest struct {
	Username string `json:"username"`
	Fund     uint64 `json:"fund"`
}

type createAsaRequest struct {
	Username  string `json:"username"`
	AssetName string `json:"asset_name"`
	UnitName  string `json:"unit_name"`
	Total     uint64 `json:"total"`
	Decimals  uint32 `json:"decimals"`
	URL       string `json:"url"`
	Note      string `json:"note"`
}

type optInRequest struct {
	Username string `json:"username"`
	AssetID  uint64 `json:"asset_id"`
}

type transferRequest struct {
	SenderUsername   string `json:"sender_username"`
	ReceiverUsername string `json:"receiver_username"`
	AssetID          uint64 `json:"asset_id"`
	Amount           int64  `json:"amount"`
}

type investRequest struct {
	BuyerUsername  string `json:"buyer_username"`
	SellerUsername string `json:"seller_username"`
	AssetID        uint64 `json:"asset_id"`
	Amount         int64  `json:"amount"`
}

type decisionRequest struct {
	SellerUsername string `json:"seller_username"`
	NotificationID uint64 `json:"notification_id"`
	Accept         bool   `json:"accept"`
}

// decodeJSON reads a request body into dst, mapping malformed bodies to a
// bad-request domain error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
