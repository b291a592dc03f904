package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/config"
	"marketplace-admin/internal/delivery"
	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/money"
	"marketplace-admin/internal/notify"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs; tests build it by hand.
type app struct {
	cfg   *config.Config
	store *session.FileStore
	in    *bufio.Reader
	out   io.Writer
	now   func() time.Time
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Logs share stdout with command output, keep them quiet unless asked.
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logger.InitWithLevel(cfg.AppEnv, level)
	defer logger.Sync()

	path := cfg.SessionFile
	if path == "" {
		if path, err = session.DefaultStorePath(); err != nil {
			logger.L().Fatal("cannot resolve session file", zap.Error(err))
		}
	}

	a := &app{
		cfg:   cfg,
		store: session.NewFileStore(path),
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		now:   time.Now,
	}
	if err := a.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Marketplace back-office operator tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.ordersCommand(),
		a.assignCommand(),
		a.reportCommand(),
	)
	return root
}

func (a *app) client(tokens api.TokenProvider) *api.Client {
	return api.NewClient(a.cfg.APIBaseURL, a.cfg.APITimeout,
		api.WithTokenProvider(tokens),
		api.WithRateLimit(a.cfg.APIRateLimit, a.cfg.APIRateBurst),
	)
}

// adminSession loads the stored session and applies the admin route guard.
func (a *app) adminSession() (*session.Session, error) {
	s, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(a.now(), session.RoleAdmin); err != nil {
		if err != session.ErrForbidden {
			_ = a.store.Clear()
		}
		return nil, fmt.Errorf("%w: run `backoffice login` first", err)
	}
	return s, nil
}

func (a *app) context(s *session.Session) context.Context {
	ctx := session.WithSession(context.Background(), s)
	return logger.WithActor(ctx, s.Key())
}

func (a *app) orderService() order.Service {
	return order.NewService(order.NewRepository(a.client(a.store)))
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email == "" {
				if email, err = a.prompt("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}

			s, err := session.Login(cmd.Context(), a.client(a.store), session.Credentials{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("login failed: %s", api.Reason(err))
			}
			if err := a.store.Save(s); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", displayName(s), s.Role)
			if s.Role != session.RoleAdmin {
				fmt.Fprintln(a.out, "This account is not an admin; back-office commands will be refused.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when empty)")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := a.store.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (%s)", displayName(s), s.Role)
			if !s.ExpiresAt.IsZero() {
				fmt.Fprintf(a.out, ", expires %s", s.ExpiresAt.Local().Format(time.RFC1123))
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}
}

func displayName(s *session.Session) string {
	switch {
	case s.User.Username != "":
		return s.User.Username
	case s.User.Email != "":
		return s.User.Email
	}
	return s.Key()
}

func (a *app) ordersCommand() *cobra.Command {
	var status, query string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := a.adminSession()
			if err != nil {
				return err
			}
			orders, err := a.orderService().GetOrders(a.context(s), &order.Query{Status: order.Status(status), Search: query})
			if err != nil {
				return fmt.Errorf("load orders: %s", api.Reason(err))
			}
			return a.printOrders(orders, nil)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only orders with this status")
	cmd.Flags().StringVarP(&query, "query", "q", "", "match order number or customer")

	cmd.AddCommand(&cobra.Command{
		Use:   "eligible",
		Short: "List orders eligible for carrier assignment",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := a.adminSession()
			if err != nil {
				return err
			}
			wf := delivery.NewWorkflow(a.orderService(), delivery.Options{Actor: s.Key()})
			if err := wf.Refresh(a.context(s)); err != nil {
				return fmt.Errorf("load orders: %s", api.Reason(err))
			}
			views := wf.Views()
			orders := make([]order.Order, len(views))
			states := make(map[string]delivery.State, len(views))
			for i, v := range views {
				orders[i] = v.Order
				states[v.Order.ID] = v.State
			}
			return a.printOrders(orders, states)
		},
	})
	return cmd
}

func (a *app) printOrders(orders []order.Order, states map[string]delivery.State) error {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders found")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	header := "ID\tORDER\tCUSTOMER\tPAYMENT\tSTATUS\tDELIVERY\tTOTAL"
	if states != nil {
		header += "\tSTATE"
	}
	fmt.Fprintln(tw, header)
	for _, o := range orders {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s",
			o.ID, o.OrderNumber, o.Customer.Username, o.PaymentMethod, o.Status, o.DeliveryMethod, money.Format(o.TotalAmount))
		if states != nil {
			line += "\t" + string(states[o.ID])
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func parseCarrier(s string) (order.DeliveryMethod, error) {
	for _, c := range order.Carriers {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", delivery.ErrInvalidCarrier
}

func (a *app) assignCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "assign <order id or number> <Uber|PickMe>",
		Short: "Assign a carrier to an eligible order and mark it shipped",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			carrier, err := parseCarrier(args[1])
			if err != nil {
				return err
			}
			s, err := a.adminSession()
			if err != nil {
				return err
			}
			ctx := a.context(s)

			rec := &notify.Recorder{}
			wf := delivery.NewWorkflow(a.orderService(), delivery.Options{Notifier: rec, Actor: s.Key()})
			if err := wf.Refresh(ctx); err != nil {
				return fmt.Errorf("load orders: %s", api.Reason(err))
			}

			id, ok := resolveOrder(wf.Orders(), args[0])
			if !ok {
				return fmt.Errorf("%w: %s is not in the eligible list", delivery.ErrOrderNotFound, args[0])
			}
			p, err := wf.Select(id, carrier)
			if err != nil {
				return err
			}

			if !yes {
				answer, err := a.prompt(fmt.Sprintf("Assign order %s (%s, %s) to %s? [y/N] ",
					p.Order.OrderNumber, p.Order.Customer.Username, money.Format(p.Order.TotalAmount), p.Carrier))
				if err != nil && err != io.EOF {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					wf.Cancel()
					fmt.Fprintln(a.out, "Cancelled")
					return nil
				}
			}

			_, assignErr := wf.Confirm(ctx)
			for _, n := range rec.Drain() {
				fmt.Fprintf(a.out, "[%s] %s\n", n.Kind, n.Message)
			}
			return assignErr
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func resolveOrder(orders []order.Order, ref string) (string, bool) {
	for _, o := range orders {
		if o.ID == ref || strings.EqualFold(o.OrderNumber, ref) {
			return o.ID, true
		}
	}
	return "", false
}
