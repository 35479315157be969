// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Recipient Получатель подарков
type Recipient struct {
	// Kind Тип получателя
	Kind string `json:"kind" validate:"required,oneof=self channel user"`

	// Identity id канала или пользователя, @username или new для нового канала
	Identity string `json:"identity,omitempty"`

	// GiftQuota Сколько подарков выдать
	GiftQuota int `json:"giftQuota" validate:"gt=0"`

	// CollectionQuota Сколько коллекций
	CollectionQuota int `json:"collectionQuota" validate:"gte=0"`
}

// Policy Политика выбора подарка
type Policy struct {
	// Sort Порядок по тиражу
	Sort string `json:"sort" validate:"required,oneof=supply_asc supply_desc"`

	// MinSupply Минимальный тираж
	MinSupply int `json:"minSupply" validate:"gte=0"`

	// MaxSupply Максимальный тираж, null - без границы
	MaxSupply *int `json:"maxSupply" validate:"omitempty,gte=0"`
}

// Stats Счётчики цикла
type Stats struct {
	Cycles        uint64 `json:"cycles"`
	Bought        int64  `json:"bought"`
	Skipped       int64  `json:"skipped"`
	Abandoned     int64  `json:"abandoned"`
	FailedBatches int64  `json:"failedBatches"`
	StarsSpent    int64  `json:"starsSpent"`
	Balance       int64  `json:"balance"`
	Running       bool   `json:"running"`
}

// State Состояние движка
type State struct {
	Paused bool        `json:"paused"`
	Peers  []Recipient `json:"peers"`
	Policy Policy      `json:"policy"`
	Stats  Stats       `json:"stats"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Trace id запроса, по нему ищется запись в журнале
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
