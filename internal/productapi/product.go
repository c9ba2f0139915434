package productapi

// Product is the backend's product record. ID is assigned by the caller.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Desc  string  `json:"desc"`
	Price float64 `json:"price"`
}
