package report

import (
	"strconv"
	"time"

	"marketplace-admin/internal/finance"
	"marketplace-admin/internal/money"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/stock"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func newDocument(kind Kind, title string, c Company, now time.Time) *Document {
	return &Document{Kind: kind, Title: title, Company: c, GeneratedAt: now}
}

func Stock(items []stock.Item, c Company, now time.Time) *Document {
	doc := newDocument(KindStock, "Stock Report", c, now)
	doc.Columns = []string{"Name", "Category", "Quantity", "Reorder Level", "Unit Price", "Status"}

	units := 0
	value := decimal.Zero
	counts := map[stock.Status]int{}
	for _, it := range items {
		units += it.Quantity
		value = value.Add(it.Value())
		counts[it.Status()]++
		doc.Rows = append(doc.Rows, []string{
			it.Name,
			it.Category,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.ReorderLevel),
			money.Format(it.Price),
			string(it.Status()),
		})
	}

	doc.Summary = []Stat{
		{"Total Items", strconv.Itoa(len(items))},
		{"Total Units", strconv.Itoa(units)},
		{"Stock Value", money.Format(value)},
		{"Low Stock", strconv.Itoa(counts[stock.StatusLowStock])},
		{"Out of Stock", strconv.Itoa(counts[stock.StatusOutOfStock])},
	}
	return doc
}

func Offers(offers []offer.Offer, c Company, now time.Time) *Document {
	doc := newDocument(KindOffers, "Supplier Offers Report", c, now)
	doc.Columns = []string{"Title", "Supplier", "Price/Unit", "Quantity", "Total", "Delivery Date", "Status"}

	counts := map[offer.Status]int{}
	approved := decimal.Zero
	for _, o := range offers {
		counts[o.Status]++
		if o.Status == offer.StatusApproved {
			approved = approved.Add(o.Total())
		}
		doc.Rows = append(doc.Rows, []string{
			o.Title,
			o.Supplier,
			money.Format(o.PricePerUnit),
			strconv.Itoa(o.Quantity),
			money.Format(o.Total()),
			o.DeliveryDate.Format(dateLayout),
			string(o.Status),
		})
	}

	doc.Summary = []Stat{
		{"Total Offers", strconv.Itoa(len(offers))},
		{"Pending", strconv.Itoa(counts[offer.StatusPending])},
		{"Approved", strconv.Itoa(counts[offer.StatusApproved])},
		{"Rejected", strconv.Itoa(counts[offer.StatusRejected])},
		{"Approved Value", money.Format(approved)},
	}
	return doc
}

func Finance(entries []finance.Entry, c Company, now time.Time) *Document {
	doc := newDocument(KindFinance, "Financial Report", c, now)
	doc.Columns = []string{"Date", "Type", "Category", "Description", "Amount"}

	for _, e := range entries {
		doc.Rows = append(doc.Rows, []string{
			e.Date.Format(dateLayout),
			string(e.Type),
			e.Category,
			e.Description,
			money.Format(e.Amount),
		})
	}

	s := finance.Summarize(entries)
	doc.Summary = []Stat{
		{"Total Income", money.Format(s.Income)},
		{"Total Expenses", money.Format(s.Expense)},
		{"Net Balance", money.Format(s.Balance)},
		{"Entries", strconv.Itoa(s.Entries)},
	}
	return doc
}

func Orders(orders []order.Order, c Company, now time.Time) *Document {
	doc := newDocument(KindOrders, "Orders Report", c, now)
	doc.Columns = []string{"Order #", "Customer", "Payment", "Status", "Delivery", "Total", "Date"}

	revenue := decimal.Zero
	delivered := 0
	for _, o := range orders {
		if o.Status != order.StatusCancelled {
			revenue = revenue.Add(o.TotalAmount)
		}
		if o.Status == order.StatusDelivered {
			delivered++
		}
		doc.Rows = append(doc.Rows, []string{
			o.OrderNumber,
			o.Customer.Username,
			string(o.PaymentMethod),
			string(o.Status),
			string(o.DeliveryMethod),
			money.Format(o.TotalAmount),
			o.CreatedAt.Format(dateLayout),
		})
	}

	avg := decimal.Zero
	if len(orders) > 0 {
		avg = revenue.DivRound(decimal.NewFromInt(int64(len(orders))), 2)
	}
	doc.Summary = []Stat{
		{"Total Orders", strconv.Itoa(len(orders))},
		{"Delivered", strconv.Itoa(delivered)},
		{"Eligible for Delivery", strconv.Itoa(len(order.FilterEligible(orders)))},
		{"Revenue", money.Format(revenue)},
		{"Average Order", money.Format(avg)},
	}
	return doc
}
