package handler

import (
	"bytes"
	"net/http"
	"time"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/finance"
	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/report"
	"marketplace-admin/internal/stock"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler renders downloadable reports from the same filters the list
// endpoints accept.
type ReportHandler struct {
	orders  order.Service
	stock   stock.Service
	offers  offer.Service
	finance finance.Service
	company report.Company
	now     func() time.Time
}

func NewReportHandler(orders order.Service, stock stock.Service, offers offer.Service, fin finance.Service, company report.Company) *ReportHandler {
	return &ReportHandler{
		orders:  orders,
		stock:   stock,
		offers:  offers,
		finance: fin,
		company: company,
		now:     time.Now,
	}
}

func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{kind}", h.Render)
}

func (h *ReportHandler) build(r *http.Request, kind report.Kind) (*report.Document, error) {
	ctx := r.Context()
	now := h.now()

	switch kind {
	case report.KindStock:
		items, err := h.stock.List(ctx, queryStock(r))
		if err != nil {
			return nil, err
		}
		return report.Stock(items, h.company, now), nil

	case report.KindOffers:
		offers, err := h.offers.List(ctx, offer.Status(r.URL.Query().Get("status")))
		if err != nil {
			return nil, err
		}
		return report.Offers(offers, h.company, now), nil

	case report.KindFinance:
		q, err := queryFinance(r)
		if err != nil {
			return nil, err
		}
		entries, err := h.finance.List(ctx, q)
		if err != nil {
			return nil, err
		}
		return report.Finance(entries, h.company, now), nil

	default:
		orders, err := h.orders.GetOrders(ctx, queryOrders(r))
		if err != nil {
			return nil, err
		}
		return report.Orders(orders, h.company, now), nil
	}
}

func (h *ReportHandler) Render(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, api.Invalid("format", "must be pdf or csv"))
		return
	}

	doc, err := h.build(r, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if format == report.FormatCSV {
		err = report.WriteCSV(&buf, doc)
	} else {
		err = report.WritePDF(&buf, doc)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromCtx(r.Context()).Info("report rendered",
		zap.String("kind", string(kind)),
		zap.String("format", string(format)),
		zap.Int("rows", len(doc.Rows)),
	)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename(format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
