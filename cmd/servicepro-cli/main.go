// servicepro-cli drives the ServicePro API client from the terminal. It keeps
// its session in the same persisted state the SDK uses, so login survives
// between invocations the way a browser session would.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/servicepro/servicepro-client/pkg/api"
	"github.com/servicepro/servicepro-client/pkg/catalog"
	"github.com/servicepro/servicepro-client/pkg/config"
	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
	"github.com/servicepro/servicepro-client/pkg/localstate"
	"github.com/servicepro/servicepro-client/pkg/logger"
	"github.com/servicepro/servicepro-client/pkg/session"
)

const usage = `usage: servicepro-cli <command> [flags]

session:
  login       -email -password [-role]
  register    -name -email -phone -password -role [-business] [-address]
  logout
  whoami

catalog:
  services    [-q] [-category] [-subcategory] [-page] [-limit]
  service     -id
  categories

bookings:
  book            -service -at RFC3339 -address [-notes]
  bookings
  vendor-bookings
  booking-status  -id -status (vendor)

chat:
  chat       -booking
  messages   -thread
  send       -thread -text
  ask        -thread -text

reviews:
  review          -booking -rating [-comment]
  vendor-reviews

settings:
  settings     -scope (admin|vendor)
`

type app struct {
	cfg     *config.Config
	log     *logger.Logger
	client  *api.Client
	store   *localstate.Store
	session *session.Manager
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "servicepro-cli"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "servicepro-cli",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	store, err := localstate.New(cfg.State.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to open local state", err)
		os.Exit(1)
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithTokenSource(store.Token),
		api.WithLogger(logg),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build api client", err)
		os.Exit(1)
	}

	a := &app{
		cfg:     cfg,
		log:     logg,
		client:  client,
		store:   store,
		session: session.NewManager(client, store, logg),
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", pkgerrors.MessageOf(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.session.Logout()
	case "whoami":
		return a.cmdWhoami(ctx)
	case "services":
		return a.cmdServices(ctx, args)
	case "service":
		return a.cmdService(ctx, args)
	case "categories":
		return a.cmdCategories(ctx)
	case "book":
		return a.cmdBook(ctx, args)
	case "bookings":
		return a.print(func() (any, error) { return a.client.MyBookings(ctx) })
	case "vendor-bookings":
		return a.print(func() (any, error) { return a.client.VendorBookings(ctx) })
	case "booking-status":
		return a.cmdBookingStatus(ctx, args)
	case "chat":
		return a.cmdChat(ctx, args)
	case "messages":
		return a.cmdMessages(ctx, args)
	case "send":
		return a.cmdSend(ctx, args, false)
	case "ask":
		return a.cmdSend(ctx, args, true)
	case "review":
		return a.cmdReview(ctx, args)
	case "vendor-reviews":
		return a.print(func() (any, error) { return a.client.VendorReviews(ctx) })
	case "settings":
		return a.cmdSettings(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	roleStr := fs.String("role", "", "expected role (admin|vendor|customer)")
	_ = fs.Parse(args)

	var role enums.Role
	if *roleStr != "" {
		parsed, err := enums.ParseRole(*roleStr)
		if err != nil {
			return err
		}
		role = parsed
	}

	if err := a.session.Login(ctx, *email, *password, role); err != nil {
		return err
	}
	return a.printState()
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "account password")
	roleStr := fs.String("role", "customer", "account role (vendor|customer)")
	business := fs.String("business", "", "business name (vendor)")
	address := fs.String("address", "", "business address (vendor)")
	_ = fs.Parse(args)

	role, err := enums.ParseRole(*roleStr)
	if err != nil {
		return err
	}

	err = a.session.Register(ctx, session.RegisterData{
		Name:         *name,
		Email:        *email,
		Phone:        *phone,
		Password:     *password,
		Role:         role,
		BusinessName: *business,
		Address:      *address,
	})
	if err != nil {
		return err
	}
	return a.printState()
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if err := a.session.Boot(ctx); err != nil {
		a.log.Warn(ctx, "identity check failed, showing last-known user")
	}
	return a.printState()
}

func (a *app) cmdServices(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("services", flag.ExitOnError)
	query := fs.String("q", "", "free-text search")
	category := fs.String("category", "", "category id")
	subcategory := fs.String("subcategory", "", "subcategory id")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	_ = fs.Parse(args)

	result, err := a.client.ListServices(ctx, api.ServiceFilter{
		Query:       *query,
		Category:    *category,
		Subcategory: *subcategory,
		Page:        *page,
		Limit:       *limit,
	})
	if err != nil {
		return err
	}

	type listedService struct {
		api.Service
		Label string `json:"label"`
	}
	items := make([]listedService, 0, len(result.Items))
	for _, svc := range result.Items {
		items = append(items, listedService{
			Service: svc,
			Label:   catalog.Label(svc.Category, svc.Subcategory),
		})
	}
	return a.printJSON(map[string]any{
		"items":      items,
		"total":      result.Total,
		"page":       result.Page,
		"limit":      result.Limit,
		"totalPages": result.TotalPages,
	})
}

func (a *app) cmdService(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("service", flag.ExitOnError)
	id := fs.String("id", "", "service id")
	_ = fs.Parse(args)
	return a.print(func() (any, error) { return a.client.GetService(ctx, *id) })
}

func (a *app) cmdCategories(ctx context.Context) error {
	return a.print(func() (any, error) { return a.client.Categories(ctx) })
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	serviceID := fs.String("service", "", "service id")
	at := fs.String("at", "", "scheduled time, RFC3339")
	address := fs.String("address", "", "service address")
	notes := fs.String("notes", "", "notes for the vendor")
	_ = fs.Parse(args)

	scheduledAt, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return fmt.Errorf("parsing -at: %w", err)
	}

	booking, err := a.client.CreateBooking(ctx, api.CreateBookingRequest{
		ServiceID:   *serviceID,
		ScheduledAt: scheduledAt,
		Address:     *address,
		Notes:       *notes,
	})
	if err != nil {
		return err
	}
	a.log.Info(a.log.WithBookingID(ctx, booking.ID), "booking created")
	return a.printJSON(booking)
}

func (a *app) cmdBookingStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("booking-status", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	statusStr := fs.String("status", "", "new status (pending|accepted|completed|cancelled)")
	_ = fs.Parse(args)

	status, err := enums.ParseBookingStatus(*statusStr)
	if err != nil {
		return err
	}
	return a.print(func() (any, error) {
		return a.client.VendorUpdateBookingStatus(ctx, *id, status)
	})
}

func (a *app) cmdChat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	_ = fs.Parse(args)
	return a.print(func() (any, error) { return a.client.ThreadForBooking(ctx, *bookingID) })
}

func (a *app) cmdMessages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("messages", flag.ExitOnError)
	threadID := fs.String("thread", "", "thread id")
	_ = fs.Parse(args)
	return a.print(func() (any, error) { return a.client.Messages(ctx, *threadID) })
}

func (a *app) cmdSend(ctx context.Context, args []string, wantAIReply bool) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	threadID := fs.String("thread", "", "thread id")
	text := fs.String("text", "", "message text")
	_ = fs.Parse(args)

	return a.print(func() (any, error) {
		if wantAIReply {
			return a.client.RequestAIReply(ctx, *threadID, *text)
		}
		return a.client.SendMessage(ctx, *threadID, *text)
	})
}

func (a *app) cmdReview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	rating := fs.Int("rating", 0, "rating 1-5")
	comment := fs.String("comment", "", "review text")
	_ = fs.Parse(args)

	if a.store.HasReviewed(*bookingID) {
		return pkgerrors.New(pkgerrors.CodeValidation, "this booking was already reviewed from this device")
	}

	review, err := a.client.CreateReview(ctx, api.CreateReviewRequest{
		BookingID: *bookingID,
		Rating:    *rating,
		Comment:   *comment,
	})
	if err != nil {
		return err
	}
	if err := a.store.MarkReviewed(*bookingID); err != nil {
		a.log.Warn(a.log.WithBookingID(ctx, *bookingID), "could not record review hint")
	}
	return a.printJSON(review)
}

func (a *app) cmdSettings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	scopeStr := fs.String("scope", "", "settings scope (admin|vendor)")
	_ = fs.Parse(args)

	scope, err := enums.ParseRole(*scopeStr)
	if err != nil {
		return err
	}
	return a.print(func() (any, error) { return a.client.GetSettings(ctx, scope) })
}

func (a *app) printState() error {
	state := a.session.State()
	out := map[string]any{"phase": state.Phase.String()}
	if state.User != nil {
		out["user"] = state.User
	}
	return a.printJSON(out)
}

func (a *app) print(call func() (any, error)) error {
	result, err := call()
	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func (a *app) printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
