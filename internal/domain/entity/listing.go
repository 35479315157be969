package entity

// Listing: снимок лимитированного подарка из каталога.
type Listing struct {
	ID              int64  `json:"id"`
	Title           string `json:"title,omitempty"`
	Price           int64  `json:"price"`
	TotalSupply     *int   `json:"total_supply,omitempty"` // nil: тираж не ограничен
	RemainingSupply *int   `json:"remaining_supply,omitempty"`
	IsLimited       bool   `json:"is_limited"`
	IsSoldOut       bool   `json:"is_sold_out"`
	PerUserCapped   bool   `json:"per_user_capped"`
}

// Supply возвращает общий тираж и признак его наличия.
func (l Listing) Supply() (int, bool) {
	if l.TotalSupply == nil {
		return 0, false
	}
	return *l.TotalSupply, true
}

// UserExhausted: лимит на пользователя исчерпан.
func (l Listing) UserExhausted() bool {
	if !l.PerUserCapped {
		return false
	}
	return l.RemainingSupply == nil || *l.RemainingSupply <= 0
}
