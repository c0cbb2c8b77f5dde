package dto

// PaymentCallback is the body the provider posts to the callback URL. The
// transaction state is present in real callbacks; when it is empty the
// bridge polls the provider for the authoritative state instead.
type PaymentCallback struct {
	OrderReference string `json:"orderReference"`
	PaymentOrder   struct {
		ID         string `json:"id"`
		Instrument string `json:"instrument"`
		Number     int64  `json:"number"`
	} `json:"paymentOrder"`
	Transaction struct {
		State string `json:"state"`
	} `json:"transaction"`
}
