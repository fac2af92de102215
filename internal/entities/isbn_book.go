package entities

// IsbnBook is the canonical metadata fetched for a scanned barcode.
type IsbnBook struct {
	IsbnCode    string   `json:"isbn_code"` // hyphen-free ISBN-10 or ISBN-13
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Authors     []string `json:"authors"`
	Description string   `json:"description,omitempty"`
}
