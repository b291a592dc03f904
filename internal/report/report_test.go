package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"marketplace-admin/internal/finance"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/stock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	company = Company{Name: "ReLove Marketplace", Address: "12 Galle Road, Colombo", Phone: "011 234 5678"}
	now     = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
)

func summaryValue(doc *Document, label string) string {
	for _, s := range doc.Summary {
		if s.Label == label {
			return s.Value
		}
	}
	return ""
}

func TestStock(t *testing.T) {
	doc := Stock([]stock.Item{
		{Name: "Chair", Category: "Furniture", Quantity: 0, ReorderLevel: 2, Price: decimal.NewFromInt(2500)},
		{Name: "Lamp", Category: "Lighting", Quantity: 4, ReorderLevel: 5, Price: decimal.NewFromInt(1200)},
		{Name: "Desk", Category: "Furniture", Quantity: 20, ReorderLevel: 5, Price: decimal.NewFromInt(1000)},
	}, company, now)

	assert.Equal(t, "3", summaryValue(doc, "Total Items"))
	assert.Equal(t, "24", summaryValue(doc, "Total Units"))
	assert.Equal(t, "Rs. 24,800.00", summaryValue(doc, "Stock Value"))
	assert.Equal(t, "1", summaryValue(doc, "Low Stock"))
	assert.Equal(t, "1", summaryValue(doc, "Out of Stock"))
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "Out of Stock", doc.Rows[0][5])
	assert.Equal(t, "stock-report-2024-06-01.csv", doc.Filename(FormatCSV))
}

func TestOffers(t *testing.T) {
	doc := Offers([]offer.Offer{
		{Title: "Laptops", PricePerUnit: decimal.NewFromInt(40000), Quantity: 2, Status: offer.StatusApproved},
		{Title: "Phones", PricePerUnit: decimal.NewFromInt(15000), Quantity: 3, Status: offer.StatusPending},
		{Title: "Tablets", PricePerUnit: decimal.NewFromInt(10000), Quantity: 1, Status: offer.StatusRejected},
	}, company, now)

	assert.Equal(t, "1", summaryValue(doc, "Pending"))
	assert.Equal(t, "Rs. 80,000.00", summaryValue(doc, "Approved Value"))
	assert.Equal(t, "Rs. 45,000.00", doc.Rows[1][4])
}

func TestFinance(t *testing.T) {
	doc := Finance([]finance.Entry{
		{Type: finance.TypeIncome, Amount: decimal.NewFromInt(125000), Category: "Sales", Description: "May sales", Date: now},
		{Type: finance.TypeExpense, Amount: decimal.RequireFromString("2500.75"), Category: "Rent", Description: "Store", Date: now},
	}, company, now)

	assert.Equal(t, "Rs. 125,000.00", summaryValue(doc, "Total Income"))
	assert.Equal(t, "Rs. 122,499.25", summaryValue(doc, "Net Balance"))
}

func TestOrders(t *testing.T) {
	doc := Orders([]order.Order{
		{OrderNumber: "A1", PaymentMethod: order.PaymentOnline, Status: order.StatusConfirmed, DeliveryMethod: order.DeliveryHome, TotalAmount: decimal.NewFromInt(3000)},
		{OrderNumber: "A2", PaymentMethod: order.PaymentBank, Status: order.StatusDelivered, DeliveryMethod: order.DeliveryUber, TotalAmount: decimal.NewFromInt(1000)},
		{OrderNumber: "A3", PaymentMethod: order.PaymentOnline, Status: order.StatusCancelled, DeliveryMethod: order.DeliveryStore, TotalAmount: decimal.NewFromInt(9999)},
	}, company, now)

	assert.Equal(t, "Rs. 4,000.00", summaryValue(doc, "Revenue"))
	assert.Equal(t, "1", summaryValue(doc, "Delivered"))
	assert.Equal(t, "1", summaryValue(doc, "Eligible for Delivery"))
	assert.Equal(t, "Rs. 1,333.33", summaryValue(doc, "Average Order"))
}

func TestWriteCSV(t *testing.T) {
	doc := &Document{
		Columns: []string{"Name", "Note"},
		Rows:    [][]string{{"Lamp", "has, comma"}, {"Desk", `say "hi"`}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, doc))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Note"}, {"Lamp", "has, comma"}, {"Desk", `say "hi"`}}, records)
}

func TestWritePDF(t *testing.T) {
	t.Run("SinglePage", func(t *testing.T) {
		doc := Stock([]stock.Item{{Name: "Lamp", Category: "Lighting", Quantity: 1, Price: decimal.NewFromInt(10)}}, company, now)
		var buf bytes.Buffer
		require.NoError(t, WritePDF(&buf, doc))
		assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
	})

	t.Run("BreaksPagesPastThreshold", func(t *testing.T) {
		doc := &Document{Title: "Long", Company: company, GeneratedAt: now, Columns: []string{"#", "Value"}}
		for i := 0; i < 120; i++ {
			doc.Rows = append(doc.Rows, []string{fmt.Sprint(i), strings.Repeat("x", 200)})
		}
		pdf, err := render(doc)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pdf.PageCount(), 3)
	})
}

func TestParse(t *testing.T) {
	k, err := ParseKind("finance")
	require.NoError(t, err)
	assert.Equal(t, KindFinance, k)
	_, err = ParseKind("payroll")
	assert.Error(t, err)

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
