package money

// IDR has no minor unit in circulation, so amounts are whole rupiah.
const IDR = "IDR"

// Money keeps amounts as integer whole units of the currency.
type Money struct {
	Amount   int64  `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

// Rupiah builds an IDR amount.
func Rupiah(amount int64) Money {
	return Money{Amount: amount, Currency: IDR}
}
