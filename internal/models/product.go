package models

// Product is a catalogue entry of the fixture storefront
type Product struct {
	Name        string
	Description string
	Price       string
}

// DefaultProducts is the demo storefront's catalogue
func DefaultProducts() []Product {
	return []Product{
		{Name: "ZARA COAT 3", Description: "Zara coat for women and girls", Price: "$ 31500"},
		{Name: "ADIDAS ORIGINAL", Description: "Adidas shoes for men", Price: "$ 31500"},
		{Name: "IPHONE 13 PRO", Description: "Apple phone", Price: "$ 231500"},
	}
}
