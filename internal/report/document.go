// Package report turns already-filtered collections into tabular documents
// and renders them as PDF or CSV.
package report

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindStock   Kind = "stock"
	KindOffers  Kind = "offers"
	KindFinance Kind = "finance"
	KindOrders  Kind = "orders"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindStock, KindOffers, KindFinance, KindOrders:
		return k, nil
	}
	return "", fmt.Errorf("unknown report %q", s)
}

type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}

// Company is printed in the document header.
type Company struct {
	Name    string
	Address string
	Phone   string
}

// Stat is one line of the summary block above the table.
type Stat struct {
	Label string
	Value string
}

type Document struct {
	Kind        Kind
	Title       string
	Company     Company
	GeneratedAt time.Time
	Summary     []Stat
	Columns     []string
	Rows        [][]string
}

// Filename is the suggested download name, e.g. stock-report-2024-06-01.pdf.
func (d *Document) Filename(f Format) string {
	return fmt.Sprintf("%s-report-%s.%s", d.Kind, d.GeneratedAt.Format("2006-01-02"), f)
}
