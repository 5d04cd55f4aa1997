package dto

import "time"

// CreateShopRequest body para POST /api/shops.
type CreateShopRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=500"`
	GSTIN    string `json:"gstin,omitempty" validate:"omitempty,len=15,alphanum"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// ShopResponse tienda en respuestas.
type ShopResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}
