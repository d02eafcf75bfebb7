package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"inventory/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// NameLimit is the number of characters of a product name shown in list reports.
	NameLimit = 30

	notAvailable  = "N/A"
	noDescription = "No description available"
	dateLayout    = "2006-01-02"
	stampLayout   = "2006-01-02 15:04:05"
	fileLayout    = "20060102_150405"
)

// ListHeaders are the column titles of a product list report.
var ListHeaders = []string{"ID", "Name", "Category", "Price", "Status", "Stock", "Created Date"}

// Row is one table row of a product list report.
type Row struct {
	ID          string
	Name        string
	Category    string
	Price       string
	Status      string
	Stock       string
	CreatedDate string
}

// Cells returns the row in column order.
func (r Row) Cells() []string {
	return []string{r.ID, r.Name, r.Category, r.Price, r.Status, r.Stock, r.CreatedDate}
}

// Summary holds the statistics printed under a multi-product report.
type Summary struct {
	TotalProducts int
	TotalValue    decimal.Decimal
	InStock       int
	OutOfStock    int
}

// Field is one label/value pair of a product detail report.
type Field struct {
	Label string
	Value string
}

// Formatter renders product values as report text.
type Formatter struct {
	CurrencyPrefix string
	Location       *time.Location
}

func (f Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// Price formats an amount with two decimals behind the currency prefix.
func (f Formatter) Price(amount decimal.Decimal) string {
	if f.CurrencyPrefix == "" {
		return amount.StringFixed(2)
	}
	return f.CurrencyPrefix + " " + amount.StringFixed(2)
}

func (f Formatter) stamp(t time.Time, layout string) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.In(f.location()).Format(layout)
}

// TruncateName shortens names longer than NameLimit characters and appends "...".
func TruncateName(name string) string {
	if utf8.RuneCountInString(name) <= NameLimit {
		return name
	}
	return string([]rune(name)[:NameLimit]) + "..."
}

func categoryName(p *models.Product) string {
	if name := p.CategoryName(); name != "" {
		return name
	}
	return notAvailable
}

// BuildRows converts products into list report rows, keeping their order.
func (f Formatter) BuildRows(products []models.Product) []Row {
	rows := make([]Row, 0, len(products))
	for i := range products {
		p := &products[i]
		rows = append(rows, Row{
			ID:          strconv.FormatUint(uint64(p.ID), 10),
			Name:        TruncateName(p.Name),
			Category:    categoryName(p),
			Price:       f.Price(p.Price),
			Status:      p.Status.Label(),
			Stock:       strconv.Itoa(p.StockQuantity),
			CreatedDate: f.stamp(p.CreatedAt, dateLayout),
		})
	}
	return rows
}

// Summarize computes the summary block. It reports false when the collection
// has at most one product, in which case no summary is printed.
func Summarize(products []models.Product) (Summary, bool) {
	if len(products) <= 1 {
		return Summary{}, false
	}
	s := Summary{TotalProducts: len(products), TotalValue: decimal.Zero}
	for _, p := range products {
		s.TotalValue = s.TotalValue.Add(p.Price)
		switch p.Status {
		case models.StatusInStock:
			s.InStock++
		case models.StatusOutOfStock:
			s.OutOfStock++
		}
	}
	return s, true
}

// SummaryFields lays out a summary as label/value pairs.
func (f Formatter) SummaryFields(s Summary) []Field {
	return []Field{
		{Label: "Total Products", Value: strconv.Itoa(s.TotalProducts)},
		{Label: "Total Value", Value: f.Price(s.TotalValue)},
		{Label: "In Stock", Value: strconv.Itoa(s.InStock)},
		{Label: "Out of Stock", Value: strconv.Itoa(s.OutOfStock)},
	}
}

// DetailFields lists every field of a single product.
func (f Formatter) DetailFields(p *models.Product) []Field {
	description := strings.TrimSpace(p.Description)
	if description == "" {
		description = noDescription
	}
	owner := p.CreatorName()
	if owner == "" {
		owner = notAvailable
	}
	active := "No"
	if p.IsActive {
		active = "Yes"
	}
	return []Field{
		{Label: "Product ID", Value: strconv.FormatUint(uint64(p.ID), 10)},
		{Label: "Name", Value: p.Name},
		{Label: "Category", Value: categoryName(p)},
		{Label: "Price", Value: f.Price(p.Price)},
		{Label: "Status", Value: p.Status.Label()},
		{Label: "Stock Quantity", Value: strconv.Itoa(p.StockQuantity)},
		{Label: "Rating", Value: p.Rating.StringFixed(1)},
		{Label: "Active", Value: active},
		{Label: "Description", Value: description},
		{Label: "Created By", Value: owner},
		{Label: "Created Date", Value: f.stamp(p.CreatedAt, stampLayout)},
		{Label: "Last Updated", Value: f.stamp(p.UpdatedAt, stampLayout)},
	}
}

// ListFilename names the download of a list report generated at now.
func ListFilename(now time.Time) string {
	return "products_report_" + now.Format(fileLayout) + ".pdf"
}

var filenameCleaner = strings.NewReplacer(" ", "_", "/", "_", `\`, "_", `"`, "")

// DetailFilename names the download of a single product report generated at now.
func DetailFilename(p *models.Product, now time.Time) string {
	return fmt.Sprintf("product_%d_%s_%s.pdf", p.ID, filenameCleaner.Replace(p.Name), now.Format(fileLayout))
}
