// Command kbctl is a minimal synchronous CLI exercising the client
// library end to end: auth, space/object listing, and search against a
// real apiclient.Client. It is a demonstration harness, not the shell
// plugin itself (see cmd/kbplugin).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"kbclient/internal/apiclient"
	"kbclient/internal/config"
	"kbclient/internal/endpoints"
	"kbclient/internal/resolver"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("kbctl: loading config: %v", err)
	}

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIEndpoint,
		Timeout: cfg.RequestTimeout,
		AppName: cfg.AppName,
	})
	if key := os.Getenv("KB_API_KEY"); key != "" {
		client.SetAPIKey(key)
	}

	res := resolver.New(client, resolver.Options{
		TTL:             cfg.CacheTTL,
		CaseInsensitive: cfg.CaseInsensitive,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch cmd {
	case "auth":
		runErr = runAuth(ctx, client, cfg.AppName, args)
	case "spaces":
		runErr = runSpaces(ctx, client, args)
	case "objects":
		runErr = runObjects(ctx, client, res, args)
	case "search":
		runErr = runSearch(ctx, client, args)
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		log.Fatalf("kbctl %s: %v", cmd, runErr)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kbctl <auth|spaces|objects|search> [flags]")
}

func runAuth(ctx context.Context, client *apiclient.Client, appName string, args []string) error {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	code := fs.String("code", "", "code displayed by the host application (skips challenge creation when set together with -challenge)")
	challengeID := fs.String("challenge", "", "existing challenge id to complete")
	fs.Parse(args)

	if *challengeID == "" {
		id, err := endpoints.CreateChallenge(ctx, client, appName)
		if err != nil {
			return err
		}
		fmt.Println("challenge_id:", id)
		fmt.Println("enter the code shown by the host app, then re-run with -challenge and -code")
		return nil
	}
	if *code == "" {
		return fmt.Errorf("-code is required once -challenge is set")
	}
	key, err := endpoints.CreateAPIKey(ctx, client, *challengeID, *code)
	if err != nil {
		return err
	}
	fmt.Println("api_key:", key)
	fmt.Println("export KB_API_KEY to use it in subsequent commands")
	return nil
}

func runSpaces(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("spaces", flag.ExitOnError)
	limit := fs.Int("limit", 100, "page size")
	fs.Parse(args)

	page, err := endpoints.ListSpaces(ctx, client, endpoints.ListParams{Limit: *limit})
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runObjects(ctx context.Context, client *apiclient.Client, res *resolver.Resolver, args []string) error {
	fs := flag.NewFlagSet("objects", flag.ExitOnError)
	space := fs.String("space", "", "space name or id")
	limit := fs.Int("limit", 100, "page size")
	fs.Parse(args)
	if *space == "" {
		return fmt.Errorf("-space is required")
	}

	spaceID, err := res.ResolveSpace(ctx, *space)
	if err != nil {
		return err
	}
	page, err := endpoints.ListObjects(ctx, client, spaceID, endpoints.ListParams{Limit: *limit})
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runSearch(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "search text")
	space := fs.String("space", "", "restrict to one space name or id (global search if empty)")
	limit := fs.Int("limit", 50, "page size")
	fs.Parse(args)

	req := endpoints.SearchRequest{Query: *query, Limit: *limit}
	if *space == "" {
		page, err := endpoints.Global(ctx, client, req)
		if err != nil {
			return err
		}
		return printJSON(page)
	}

	res := resolver.New(client, resolver.NewDefaultOptions())
	spaceID, err := res.ResolveSpace(ctx, *space)
	if err != nil {
		return err
	}
	page, err := endpoints.InSpace(ctx, client, spaceID, req)
	if err != nil {
		return err
	}
	return printJSON(page)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
