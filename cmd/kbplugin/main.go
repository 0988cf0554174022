// Command kbplugin is a minimal synchronous command-table host
// demonstrating the shell-plugin value/context-propagation model (C5)
// over a line-based stdin/stdout protocol. The real plugin RPC envelope
// is out of scope (spec.md §1); this stands in for it with one JSON
// value per line: a command line in, an entityvalue.Record (or an
// error object) out.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"kbclient/internal/apiclient"
	"kbclient/internal/config"
	"kbclient/internal/endpoints"
	"kbclient/internal/entityvalue"
	"kbclient/internal/model"
	"kbclient/internal/resolver"
)

// handler executes one command line against a resolved space context and
// returns the resulting entity values to emit.
type handler func(ctx context.Context, h *host, args []string, piped *entityvalue.EntityValue) ([]entityvalue.EntityValue, error)

type host struct {
	client *apiclient.Client
	res    *resolver.Resolver
	cfg    *config.Config
}

var commands map[string]handler

func init() {
	commands = map[string]handler{
		"space.list":  cmdSpaceList,
		"object.list": cmdObjectList,
		"object.get":  cmdObjectGet,
		"search":      cmdSearch,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("kbplugin: loading config: %v", err)
	}
	client := apiclient.New(apiclient.Config{BaseURL: cfg.APIEndpoint, Timeout: cfg.RequestTimeout, AppName: cfg.AppName})
	if key := os.Getenv("KB_API_KEY"); key != "" {
		client.SetAPIKey(key)
	}
	h := &host{
		client: client,
		res:    resolver.New(client, resolver.Options{TTL: cfg.CacheTTL, CaseInsensitive: cfg.CaseInsensitive}),
		cfg:    cfg,
	}

	scanner := bufio.NewScanner(os.Stdin)
	var piped *entityvalue.EntityValue
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		piped = h.dispatch(context.Background(), line, piped)
	}
}

// dispatch runs one command line and writes its result (or error) as a
// single JSON line to stdout. It returns the last emitted value so the
// next line can pipe from it, mirroring the shell plugin's positional
// value-passing convention (spec.md §5).
func (h *host) dispatch(ctx context.Context, line string, piped *entityvalue.EntityValue) *entityvalue.EntityValue {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return piped
	}
	name, args := fields[0], fields[1:]

	fn, ok := commands[name]
	if !ok {
		writeError(fmt.Errorf("unknown command %q", name))
		return piped
	}
	values, err := fn(ctx, h, args, piped)
	if err != nil {
		writeError(err)
		return piped
	}
	for _, v := range values {
		writeRecord(v.Record())
	}
	if len(values) == 0 {
		return piped
	}
	last := values[len(values)-1]
	return &last
}

func writeRecord(rec entityvalue.Record) {
	b, err := json.Marshal(rec)
	if err != nil {
		writeError(err)
		return
	}
	fmt.Println(string(b))
}

func writeError(err error) {
	fmt.Println(`{"_type":"error","message":` + strconvQuote(err.Error()) + `}`)
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// wrapObject constructs the EntityValue for an Object fetched from a
// listing or search. type_id is never trusted from the wire (the service
// doesn't even send it, per §3.1's schema) — it is always resolved from
// type_key against the Type it names in spaceID (§8.1 property 8, §8.2 S3).
func wrapObject(ctx context.Context, h *host, spaceID string, o model.Object) (entityvalue.EntityValue, error) {
	typeID, err := h.res.ResolveTypeByKey(ctx, spaceID, o.TypeKey)
	if err != nil {
		return entityvalue.EntityValue{}, err
	}
	return entityvalue.NewObject(o, spaceID, typeID, o.TypeKey), nil
}

func cmdSpaceList(ctx context.Context, h *host, args []string, piped *entityvalue.EntityValue) ([]entityvalue.EntityValue, error) {
	page, err := endpoints.ListSpaces(ctx, h.client, endpoints.ListParams{Limit: 1000})
	if err != nil {
		return nil, err
	}
	out := make([]entityvalue.EntityValue, 0, len(page.Data))
	for _, sp := range page.Data {
		out = append(out, entityvalue.NewSpace(sp))
	}
	return out, nil
}

func cmdObjectList(ctx context.Context, h *host, args []string, piped *entityvalue.EntityValue) ([]entityvalue.EntityValue, error) {
	spaceID, err := entityvalue.ResolveSpaceContext(ctx, h.res, flagArg(args, "--space"), piped, h.cfg.DefaultSpace)
	if err != nil {
		return nil, err
	}
	page, err := endpoints.ListObjects(ctx, h.client, spaceID, endpoints.ListParams{Limit: 1000})
	if err != nil {
		return nil, err
	}
	out := make([]entityvalue.EntityValue, 0, len(page.Data))
	for _, o := range page.Data {
		v, err := wrapObject(ctx, h, spaceID, o)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func cmdObjectGet(ctx context.Context, h *host, args []string, piped *entityvalue.EntityValue) ([]entityvalue.EntityValue, error) {
	spaceID, err := entityvalue.ResolveSpaceContext(ctx, h.res, flagArg(args, "--space"), piped, h.cfg.DefaultSpace)
	if err != nil {
		return nil, err
	}
	name := positionalArg(args)
	if name == "" {
		return nil, fmt.Errorf("object.get requires an id or name argument")
	}
	id, err := h.res.ResolveObject(ctx, spaceID, name)
	if err != nil {
		return nil, err
	}
	o, err := endpoints.GetObject(ctx, h.client, spaceID, id)
	if err != nil {
		return nil, err
	}
	v, err := wrapObject(ctx, h, spaceID, o)
	if err != nil {
		return nil, err
	}
	return []entityvalue.EntityValue{v}, nil
}

func cmdSearch(ctx context.Context, h *host, args []string, piped *entityvalue.EntityValue) ([]entityvalue.EntityValue, error) {
	query := positionalArg(args)
	spaceFlag := flagArg(args, "--space")

	if spaceFlag == "" && piped == nil && h.cfg.DefaultSpace == "" {
		result, err := endpoints.Global(ctx, h.client, endpoints.SearchRequest{Query: query, Limit: 100})
		if err != nil {
			return nil, err
		}
		out := make([]entityvalue.EntityValue, 0, len(result.Data))
		for _, o := range result.Data {
			v, err := wrapObject(ctx, h, o.SpaceID, o)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	spaceID, err := entityvalue.ResolveSpaceContext(ctx, h.res, spaceFlag, piped, h.cfg.DefaultSpace)
	if err != nil {
		return nil, err
	}
	result, err := endpoints.InSpace(ctx, h.client, spaceID, endpoints.SearchRequest{Query: query, Limit: 100})
	if err != nil {
		return nil, err
	}
	out := make([]entityvalue.EntityValue, 0, len(result.Data))
	for _, o := range result.Data {
		v, err := wrapObject(ctx, h, spaceID, o)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// flagArg returns the value following a "--name value" pair in args, or
// "" if absent.
func flagArg(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// positionalArg returns the first argument that is not part of a
// "--flag value" pair.
func positionalArg(args []string) string {
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "--") {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
