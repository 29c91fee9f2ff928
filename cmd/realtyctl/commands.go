package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"realty-client/internal/apiclient"
	"realty-client/internal/auction"
	"realty-client/internal/clienterrors"
	"realty-client/internal/listing"
	"realty-client/internal/models"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	login := fs.String("login", "", "username, email or phone")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := a.session.Login(ctx, models.LoginInput{Login: *login, Password: *password}); err != nil {
		return errors.New(a.session.LastError())
	}
	u := a.session.CurrentUser()
	fmt.Printf("logged in as %s (%s)\n", u.Username, u.Role)
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	in := models.RegisterInput{}
	fs.StringVar(&in.Username, "username", "", "username")
	fs.StringVar(&in.FullName, "full-name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.Phone, "phone", "", "phone")
	role := fs.String("role", string(models.RoleBuyer), "buyer or seller")
	fs.StringVar(&in.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	in.Role = models.Role(*role)
	in.PasswordConfirm = in.Password

	if err := a.session.Register(ctx, in); err != nil {
		return errors.New(a.session.LastError())
	}
	fmt.Printf("registered and logged in as %s\n", a.session.CurrentUser().Username)
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdStatus(ctx context.Context, a *app, _ []string) error {
	tokens, err := a.tokens.Load()
	if err != nil {
		return err
	}
	fmt.Printf("api:    %s\n", a.cfg.BaseURL())
	fmt.Printf("tokens: %s\n", a.tokens.Path())

	if tokens.Empty() {
		fmt.Println("state:  anonymous")
		return nil
	}
	if exp, err := apiclient.AccessTokenExpiry(tokens.Access); err == nil {
		fmt.Printf("access: expires %s\n", exp.Local().Format(time.RFC1123))
	}

	a.restore(ctx)
	fmt.Printf("state:  %s\n", a.session.State())
	if u := a.session.CurrentUser(); u != nil {
		fmt.Printf("user:   %s (%s, %s)\n", u.Username, u.FullName, u.Role)
	}
	return nil
}

// filterFlags registers the listing filter flags on fs; the returned
// function builds the normalized FilterState after fs.Parse.
func filterFlags(fs *flag.FlagSet) func() (listing.FilterState, error) {
	keys := map[string]*string{
		"search":                  fs.String("search", "", "text search"),
		listing.KeyAISearch:       fs.String("ai", "", "natural-language query"),
		listing.KeyNearbyLocation: fs.String("near", "", "place to search around"),
		listing.KeyNearbyRadius:   fs.String("radius", "", "radius around -near in km"),
		"type":                    fs.String("type", "", "sale, rent or daily_rent"),
		"rooms":                   fs.String("rooms", "", "number of rooms"),
		"min_price":               fs.String("min-price", "", "minimum price"),
		"max_price":               fs.String("max-price", "", "maximum price"),
		"has_furniture":           fs.String("furniture", "", "true or false"),
		"sort_by":                 fs.String("sort", "", "created_at, price, area or rooms"),
		"sort_order":              fs.String("order", "", "asc or desc"),
	}

	return func() (listing.FilterState, error) {
		values := url.Values{}
		for k, v := range keys {
			if *v != "" {
				values.Set(k, *v)
			}
		}

		form, err := listing.ParsePropertyFilters(values)
		if err != nil {
			return nil, err
		}
		state, err := form.State()
		if err != nil {
			return nil, err
		}
		return listing.NormalizeFilters(state), nil
	}
}

func cmdProperties(ctx context.Context, a *app, args []string) error {
	fs := newFlags("properties")
	filters := filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	state, err := filters()
	if err != nil {
		return err
	}

	a.restore(ctx)
	res, err := listing.NewSearcher(a.client).Search(ctx, state)
	if err != nil {
		return errors.New(clienterrors.UserMessage(err, "search failed"))
	}

	if res.AIMessage != "" {
		fmt.Println(res.AIMessage)
	}
	fmt.Printf("found %d (%s)\n", res.Count, res.Source)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPRICE\tROOMS\tTITLE\tADDRESS")
	for i := range res.Properties {
		p := &res.Properties[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n", p.ID, listing.TypeLabel(p.Type), a.prices.FormatPrice(p), p.Rooms, p.Title, p.Address)
	}
	return w.Flush()
}

func cmdProperty(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	a.restore(ctx)
	p, err := a.client.GetProperty(ctx, id)
	if err != nil {
		return errors.New(clienterrors.UserMessage(err, "could not load the listing"))
	}

	fmt.Printf("%s\n%s\n", p.Title, a.prices.FormatPrice(p))
	if label := listing.MinimumRentalLabel(p); label != "" {
		fmt.Println(label)
	}
	fmt.Printf("type:    %s\n", listing.TypeLabel(p.Type))
	fmt.Printf("address: %s\n", p.Address)
	fmt.Printf("rooms:   %d, area: %g м²\n", p.Rooms, p.Area)
	if p.Latitude != nil && p.Longitude != nil {
		fmt.Printf("coords:  %.6f, %.6f\n", *p.Latitude, *p.Longitude)
	}
	for _, img := range p.Images {
		fmt.Printf("image:   %s\n", img.Image)
	}
	if strings.TrimSpace(p.Description) != "" {
		fmt.Printf("\n%s\n", p.Description)
	}
	return nil
}

func cmdAuctions(ctx context.Context, a *app, args []string) error {
	fs := newFlags("auctions")
	active := fs.Bool("active", false, "only running auctions")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	params := url.Values{}
	if *active {
		params.Set("is_active", "true")
	}

	a.restore(ctx)
	page, err := a.client.ListAuctions(ctx, params)
	if err != nil {
		return errors.New(clienterrors.UserMessage(err, "could not load auctions"))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCURRENT\tENDS\tPROPERTY")
	for i := range page.Results {
		au := &page.Results[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", au.ID, auction.StatusLabel(au.Status),
			a.prices.FormatAmount(au.CurrentPrice.Float()), endsLabel(au), au.PropertyTitle)
	}
	return w.Flush()
}

func endsLabel(au *models.Auction) string {
	if !au.IsTimeBound() {
		return auction.EndTypeLabel(au.EndType)
	}
	return auction.FormatRemaining(time.Until(*au.EndTime))
}

func cmdAuction(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	a.restore(ctx)
	flow := auction.NewBidFlow(a.client, a.session, id, auction.WithPriceFormatter(a.prices.FormatAmount))
	defer flow.Close()
	if err := flow.Load(ctx); err != nil {
		return errors.New(clienterrors.UserMessage(err, "could not load the auction"))
	}

	printAuction(a, flow)
	return nil
}

func printAuction(a *app, flow *auction.BidFlow) {
	au := flow.Auction()
	fmt.Printf("auction %d: %s\n", au.ID, au.PropertyTitle)
	fmt.Printf("status:    %s (%s)\n", auction.StatusLabel(au.Status), auction.EndTypeLabel(au.EndType))
	fmt.Printf("start:     %s\n", a.prices.FormatAmount(au.StartPrice.Float()))
	fmt.Printf("current:   %s\n", a.prices.FormatAmount(au.CurrentPrice.Float()))
	if au.TargetPrice != nil {
		fmt.Printf("target:    %s\n", a.prices.FormatAmount(au.TargetPrice.Float()))
	}
	if au.IsTimeBound() {
		fmt.Printf("time left: %s\n", flow.TimeLeft())
	}
	if au.WinnerName != nil {
		fmt.Printf("winner:    %s\n", *au.WinnerName)
	}

	if err := flow.CanBid(); err == nil {
		fmt.Printf("next bid:  from %s (suggested %s)\n",
			a.prices.FormatAmount(flow.MinimumBid()), a.prices.FormatAmount(flow.SuggestedBid()))
	}

	for _, b := range au.Bids {
		fmt.Printf("  %s  %-20s %s\n", b.BidTime.Local().Format("02.01 15:04:05"), b.BidderName, a.prices.FormatAmount(b.Amount.Float()))
	}
}

func cmdBid(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	a.restore(ctx)
	flow := auction.NewBidFlow(a.client, a.session, id, auction.WithPriceFormatter(a.prices.FormatAmount))
	defer flow.Close()
	if err := flow.Load(ctx); err != nil {
		return errors.New(clienterrors.UserMessage(err, "could not load the auction"))
	}

	amount := flow.SuggestedBid()
	if len(args) > 1 {
		amount, err = strconv.ParseFloat(strings.ReplaceAll(args[1], " ", ""), 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
	}

	if err := flow.PlaceBid(ctx, amount); err != nil {
		if msg := flow.LastError(); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	fmt.Printf("bid of %s accepted\n", a.prices.FormatAmount(amount))
	printAuction(a, flow)
	return nil
}

func cmdWatch(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	expired := make(chan struct{})
	var once sync.Once
	a.restore(ctx)
	flow := auction.NewBidFlow(a.client, a.session, id,
		auction.WithPriceFormatter(a.prices.FormatAmount),
		auction.WithTickHandler(func(label string) { fmt.Printf("\r%-24s", label) }),
		auction.WithExpireHandler(func() { once.Do(func() { close(expired) }) }),
	)
	defer flow.Close()

	if err := flow.Load(ctx); err != nil {
		return errors.New(clienterrors.UserMessage(err, "could not load the auction"))
	}
	if !flow.Auction().IsTimeBound() {
		printAuction(a, flow)
		return errors.New("auction has no end time to watch")
	}

	printAuction(a, flow)
	select {
	case <-expired:
		fmt.Printf("\r%-24s\n", auction.ExpiredLabel)
		if err := flow.Refresh(ctx); err == nil {
			printAuction(a, flow)
		}
	case <-ctx.Done():
		fmt.Println()
	}
	return nil
}
