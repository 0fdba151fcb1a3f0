package sample

// Item is scanned by the generator tests.
type Item struct {
	SKU    string `json:"sku"`
	Count  int
	State  string `structmap:"name=state" json:"status"`
	Note   string `json:"-"`
	hidden bool
}
