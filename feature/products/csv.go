package products

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"media-sync/core/utils"
	"media-sync/feature/products/models"
)

// Recognized CSV headers. Column order is free, matching is case-insensitive,
// and unknown columns are ignored.
const (
	colType             = "type"
	colSKU              = "sku"
	colName             = "name"
	colPublished        = "published"
	colFeatured         = "featured"
	colVisibility       = "visibility"
	colShortDescription = "short_description"
	colDescription      = "description"
	colRegularPrice     = "regular_price"
	colStock            = "stock"
	colManageStock      = "manage_stock"
	colStockStatus      = "stock_status"
	colCategories       = "categories"
	colImages           = "images"
	colCrosssellIDs     = "crosssell_ids"
	colUpsellIDs        = "upsell_ids"
)

// ParseCSV reads a product CSV with a header row and returns one ProductRow
// per data line. A missing sku column or an unreadable file rejects the whole
// file; individual rows are not dropped here so the importer can report them.
func ParseCSV(r io.Reader) ([]models.ProductRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &models.ValidationError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &models.ValidationError{Reason: fmt.Sprintf("cannot read header: %v", err)}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		// BOM from spreadsheet exports sticks to the first header cell.
		key = strings.TrimPrefix(key, "\uFEFF")
		index[key] = i
	}
	if _, ok := index[colSKU]; !ok {
		return nil, &models.ValidationError{Reason: "missing required column sku"}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []models.ProductRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &models.ValidationError{Reason: fmt.Sprintf("malformed row at line %d: %v", parseErr.Line, parseErr.Err)}
			}
			return nil, &models.ValidationError{Reason: fmt.Sprintf("cannot read row: %v", err)}
		}

		rows = append(rows, models.ProductRow{
			Line:             line,
			SKU:              field(record, colSKU),
			Type:             field(record, colType),
			Name:             field(record, colName),
			Published:        utils.ToBool(field(record, colPublished)),
			Featured:         utils.ToBool(field(record, colFeatured)),
			Visibility:       field(record, colVisibility),
			ShortDescription: field(record, colShortDescription),
			Description:      field(record, colDescription),
			RegularPrice:     field(record, colRegularPrice),
			Stock:            utils.ToInt(field(record, colStock)),
			ManageStock:      utils.ToBool(field(record, colManageStock)),
			StockStatus:      field(record, colStockStatus),
			Categories:       field(record, colCategories),
			Images:           field(record, colImages),
			CrosssellIDs:     field(record, colCrosssellIDs),
			UpsellIDs:        field(record, colUpsellIDs),
		})
	}
	return rows, nil
}
