package entity

type PurchaseOutcome string

const (
	OutcomeSucceeded      PurchaseOutcome = "succeeded"
	OutcomePriceMismatch  PurchaseOutcome = "price_mismatch"
	OutcomeTransportError PurchaseOutcome = "transport_error"
)

// Quotation: зафиксированная цена и непрозрачный хэндл формы оплаты.
type Quotation struct {
	Price  int64
	Handle any
}

// PurchaseAttempt: одна транзакция покупки, не сохраняется.
type PurchaseAttempt struct {
	ListingID   int64
	Target      Target
	QuotedPrice int64
	Outcome     PurchaseOutcome
	Err         error
}
