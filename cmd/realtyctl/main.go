// Command realtyctl is a terminal front end for the marketplace API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"realty-client/internal/apiclient"
	"realty-client/internal/config"
	"realty-client/internal/listing"
	"realty-client/internal/session"
	"realty-client/internal/tokenstore"
	"realty-client/utils"
)

var errUsage = errors.New("usage")

// app bundles what every command needs
type app struct {
	cfg     *config.Config
	tokens  *tokenstore.FileStore
	client  *apiclient.Client
	session *session.Store
	prices  *listing.PriceFormatter
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":      {"log in: login -login <username|email|phone> -password <password>", cmdLogin},
	"register":   {"create an account: register -username u -email e -role buyer|seller -password p", cmdRegister},
	"logout":     {"log out and forget stored tokens", cmdLogout},
	"status":     {"show the current session", cmdStatus},
	"properties": {"search listings: properties [-search s] [-ai q] [-near place] [-type t] ...", cmdProperties},
	"property":   {"show one listing: property <id>", cmdProperty},
	"map":        {"pin search results on a map: map [-near place] [-type t] ...", cmdMap},
	"geocode":    {"resolve an address: geocode <address> | geocode -reverse lat,lng", cmdGeocode},
	"auctions":   {"list auctions: auctions [-active]", cmdAuctions},
	"auction":    {"show one auction: auction <id>", cmdAuction},
	"bid":        {"place a bid: bid <auction-id> [amount]", cmdBid},
	"watch":      {"follow an auction countdown: watch <auction-id>", cmdWatch},
}

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, newApp(cfg), flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: realtyctl %s\n", cmd.summary)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config) *app {
	tokens := tokenstore.NewFileStore(cfg.TokenFile)
	client := apiclient.New(cfg.BaseURL(), tokens, apiclient.WithTimeout(cfg.HTTPTimeout))
	store := session.NewStore(client, tokens)
	client.OnSessionExpired(func() {
		store.Expire()
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	})

	return &app{
		cfg:     cfg,
		tokens:  tokens,
		client:  client,
		session: store,
		prices:  listing.NewPriceFormatter(cfg.PriceLocale, cfg.CurrencySuffix),
	}
}

// restore loads the stored session; a rejected session leaves the user
// anonymous rather than failing the command
func (a *app) restore(ctx context.Context) {
	if err := a.session.Init(ctx); err != nil {
		utils.Warn("realtyctl: stored session not restored", map[string]any{"error": err.Error()})
	}
}

func usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "usage: realtyctl <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", name, commands[name].summary)
	}
}
