package entity

// SeatSelection is one chosen seat for one passenger on one journey
type SeatSelection struct {
	SeatCode    string  `json:"seatCode"`
	RowNumber   int     `json:"rowNumber"`
	SeatLetter  string  `json:"seatLetter"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	VAT         float64 `json:"vat"`
	ServiceCode string  `json:"serviceCode,omitempty"`
	Description string  `json:"description,omitempty"`
}

// SeatCharge is one raw seat record from a seat-map response
type SeatCharge struct {
	RowNumber   int     `json:"rowNumber"`
	SeatLetter  string  `json:"seatLetter"`
	SeatCode    string  `json:"seatCode"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	VAT         float64 `json:"vat"`
	Available   bool    `json:"available"`
	ServiceCode string  `json:"serviceCode,omitempty"`
	Description string  `json:"description,omitempty"`
}

// SeatRow is one cabin row of seat charges, sorted by seat letter
type SeatRow struct {
	RowNumber int          `json:"rowNumber"`
	Seats     []SeatCharge `json:"seats"`
}
