package models

// ProductRow is one parsed CSV row before it touches the store.
type ProductRow struct {
	// Line is the 1-based CSV line the row came from (for error reporting).
	Line int

	SKU              string
	Type             string
	Name             string
	Published        bool
	Featured         bool
	Visibility       string
	ShortDescription string
	Description      string
	RegularPrice     string
	Stock            int
	ManageStock      bool
	StockStatus      string
	Categories       string
	Images           string
	CrosssellIDs     string
	UpsellIDs        string
}

// Record converts the row into its persisted form.
func (r ProductRow) Record() ProductRecord {
	return ProductRecord{
		SKU:              r.SKU,
		Type:             r.Type,
		Name:             r.Name,
		Published:        r.Published,
		Featured:         r.Featured,
		Visibility:       r.Visibility,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		RegularPrice:     r.RegularPrice,
		Stock:            r.Stock,
		ManageStock:      r.ManageStock,
		StockStatus:      r.StockStatus,
		Categories:       r.Categories,
		Images:           r.Images,
		CrosssellIDs:     r.CrosssellIDs,
		UpsellIDs:        r.UpsellIDs,
	}
}

// ProductRecord is the persisted product, keyed by SKU. Products are never
// deleted by the importer.
type ProductRecord struct {
	SKU              string `gorm:"primaryKey;size:191;column:sku" json:"sku"`
	Type             string `gorm:"size:32" json:"type"`
	Name             string `gorm:"size:255" json:"name"`
	Published        bool   `json:"published"`
	Featured         bool   `json:"featured"`
	Visibility       string `gorm:"size:32" json:"visibility"`
	ShortDescription string `gorm:"type:text" json:"short_description"`
	Description      string `gorm:"type:text" json:"description"`
	// Prices stay strings: they are passed through, never computed on.
	RegularPrice string `gorm:"size:32" json:"regular_price"`
	Stock        int    `json:"stock"`
	ManageStock  bool   `json:"manage_stock"`
	StockStatus  string `gorm:"size:32" json:"stock_status"`
	Categories   string `gorm:"type:text" json:"categories"`
	Images       string `gorm:"type:text" json:"images"`
	CrosssellIDs string `gorm:"type:text;column:crosssell_ids" json:"crosssell_ids"`
	UpsellIDs    string `gorm:"type:text;column:upsell_ids" json:"upsell_ids"`
}

// TableName sets the GORM table name.
func (ProductRecord) TableName() string {
	return "product_records"
}

// ImportSummary reports the outcome of one product import.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	// Errors holds per-row failure details.
	Errors []string `json:"errors"`
}

// NewImportSummary returns a summary with the error list allocated.
func NewImportSummary() *ImportSummary {
	return &ImportSummary{Errors: []string{}}
}
