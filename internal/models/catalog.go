package models

// ProductRecord is one product from a catalog import. Slug is optional; when
// set it becomes the product's friendly URL path.
type ProductRecord struct {
	Name           string
	ArticleNumber  string
	SearchKeywords string
	Slug           string
}

// CategoryRecord is one category from a catalog import.
type CategoryRecord struct {
	Name string
	Slug string
}

// ManufacturerRecord is one manufacturer from a catalog import.
type ManufacturerRecord struct {
	Name string
	Slug string
}
