package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SaveGameRequest struct {
	UserID     int64    `json:"userId"`
	Money      int64    `json:"money"`
	FishingRod string   `json:"fishingRod"`
	OwnedRods  []string `json:"ownedRods"`
}

// FishPayload mirrors the client's fish descriptor; the client spells the
// colour field "color" while the stored column is "colour".
type FishPayload struct {
	Name   string  `json:"name"`
	Rarity string  `json:"rarity"`
	Weight float64 `json:"weight"`
	Price  int64   `json:"price"`
	Color  string  `json:"color"`
}

type AddFishRequest struct {
	UserID int64       `json:"userId"`
	Fish   FishPayload `json:"fish"`
}

type ToggleFavouriteRequest struct {
	FishID    int64 `json:"fishId"`
	Favourite bool  `json:"favourite"`
}

type SellFishRequest struct {
	UserID int64 `json:"userId"`
}
