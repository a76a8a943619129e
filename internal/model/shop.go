package model

// ShopItem is a purchasable reward.
type ShopItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
	Purchased bool   `json:"purchased"`
}
