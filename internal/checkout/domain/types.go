package domain

type QuoteLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Quote prices the cart at current catalog prices, as opposed to the
// add-time snapshots the cart lines carry.
type Quote struct {
	Lines []QuoteLine `json:"lines"`
	Total float64     `json:"total"`
}
