package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/finance"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/report"
	"marketplace-admin/internal/stock"

	"github.com/spf13/cobra"
)

type reportOptions struct {
	format string
	out    string
	status string
	query  string
	from   string
	to     string
}

func (a *app) reportCommand() *cobra.Command {
	var opts reportOptions
	cmd := &cobra.Command{
		Use:       "report <stock|offers|finance|orders>",
		Short:     "Export a report as PDF or CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"stock", "offers", "finance", "orders"},
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			s, err := a.adminSession()
			if err != nil {
				return err
			}

			doc, err := a.buildReport(a.context(s), kind, opts)
			if err != nil {
				return fmt.Errorf("build %s report: %s", kind, api.Reason(err))
			}

			var buf bytes.Buffer
			if format == report.FormatCSV {
				err = report.WriteCSV(&buf, doc)
			} else {
				err = report.WritePDF(&buf, doc)
			}
			if err != nil {
				return err
			}

			path := opts.out
			if path == "" {
				path = doc.Filename(format)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(a.out, "Wrote %s (%d rows)\n", path, len(doc.Rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pdf", "pdf or csv")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default <kind>-report-<date>.<format>)")
	cmd.Flags().StringVar(&opts.status, "status", "", "status filter (orders, offers, stock)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "search filter (orders, stock)")
	cmd.Flags().StringVar(&opts.from, "from", "", "first day, YYYY-MM-DD (finance)")
	cmd.Flags().StringVar(&opts.to, "to", "", "last day, YYYY-MM-DD (finance)")
	return cmd
}

func (a *app) company() report.Company {
	return report.Company{
		Name:    a.cfg.CompanyName,
		Address: a.cfg.CompanyAddress,
		Phone:   a.cfg.CompanyPhone,
	}
}

func (a *app) buildReport(ctx context.Context, kind report.Kind, opts reportOptions) (*report.Document, error) {
	client := a.client(a.store)
	now := a.now()

	switch kind {
	case report.KindStock:
		items, err := stock.NewService(stock.NewRepository(client)).List(ctx, &stock.Query{
			Criteria: stock.Criteria{Query: opts.query, Status: stock.Status(opts.status)},
		})
		if err != nil {
			return nil, err
		}
		return report.Stock(items, a.company(), now), nil

	case report.KindOffers:
		offers, err := offer.NewService(offer.NewRepository(client), nil).List(ctx, offer.Status(opts.status))
		if err != nil {
			return nil, err
		}
		return report.Offers(offers, a.company(), now), nil

	case report.KindFinance:
		q, err := financeQuery(opts)
		if err != nil {
			return nil, err
		}
		entries, err := finance.NewService(client).List(ctx, q)
		if err != nil {
			return nil, err
		}
		return report.Finance(entries, a.company(), now), nil

	default:
		orders, err := order.NewService(order.NewRepository(client)).GetOrders(ctx, &order.Query{
			Status: order.Status(opts.status),
			Search: opts.query,
		})
		if err != nil {
			return nil, err
		}
		return report.Orders(orders, a.company(), now), nil
	}
}

func financeQuery(opts reportOptions) (*finance.Query, error) {
	q := &finance.Query{}
	if opts.from != "" {
		t, err := time.Parse("2006-01-02", opts.from)
		if err != nil {
			return nil, api.Invalid("from", "must be a date (YYYY-MM-DD)")
		}
		q.From = t
	}
	if opts.to != "" {
		t, err := time.Parse("2006-01-02", opts.to)
		if err != nil {
			return nil, api.Invalid("to", "must be a date (YYYY-MM-DD)")
		}
		q.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return q, nil
}
