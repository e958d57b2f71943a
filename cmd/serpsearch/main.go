package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	serp "github.com/kitbuilder587/serp-go"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:      "serpsearch",
		Usage:     "query the SerpAPI search endpoint from the command line",
		Version:   serp.Version,
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				EnvVars: []string{serp.EnvAPIKey},
				Usage:   "SerpAPI credential",
			},
			&cli.StringFlag{
				Name:    "base-url",
				EnvVars: []string{"SERP_BASE_URL"},
				Usage:   "override the API endpoint",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "per-request timeout",
			},
			&cli.StringFlag{Name: "language", Usage: "interface language (hl), e.g. en"},
			&cli.StringFlag{Name: "country", Usage: "result country (gl), e.g. us"},
			&cli.StringFlag{Name: "domain", Usage: "google domain, e.g. google.co.uk"},
			&cli.StringFlag{Name: "device", Usage: "desktop, mobile or tablet"},
			&cli.StringFlag{Name: "safe", Usage: "safe search: active or off"},
			&cli.StringFlag{Name: "type", Value: "web", Usage: "web, images, videos, news, shopping or local"},
			&cli.StringFlag{Name: "location", Usage: "location for local search, e.g. \"Austin, Texas\""},
			&cli.IntFlag{Name: "offset", Usage: "result offset to start from"},
			&cli.IntFlag{Name: "pages", Value: 1, Usage: "maximum pages to fetch (0 = until exhausted)"},
			&cli.IntFlag{Name: "page-size", Value: 10, Usage: "results per page (1-100)"},
			&cli.DurationFlag{Name: "delay", Usage: "delay between page fetches"},
			&cli.Float64Flag{Name: "rate-limit", Usage: "client-side requests per second (0 = unlimited)"},
			&cli.IntFlag{Name: "max-retries", Value: 3, Usage: "retries per request"},
			&cli.BoolFlag{Name: "json", Usage: "print raw pages as JSON"},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"SERP_LOG_LEVEL"},
				Usage:   "debug, info, warn or error",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return cli.Exit("usage: serpsearch [flags] <term>", 2)
	}
	term := strings.Join(ctx.Args().Slice(), " ")

	logger, err := newLogger(ctx.String("log-level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	retry := serp.DefaultRetryPolicy()
	retry.MaxRetries = ctx.Int("max-retries")

	client, err := serp.New(serp.Config{
		APIKey:    ctx.String("api-key"),
		BaseURL:   ctx.String("base-url"),
		Timeout:   ctx.Duration("timeout"),
		Retry:     &retry,
		RateLimit: ctx.Float64("rate-limit"),
	}, logger)
	if err != nil {
		return err
	}

	builder := serp.NewQuery(term)
	if v := ctx.String("language"); v != "" {
		builder = builder.Language(v)
	}
	if v := ctx.String("country"); v != "" {
		builder = builder.Country(v)
	}
	if v := ctx.String("domain"); v != "" {
		builder = builder.Domain(v)
	}
	if v := ctx.String("device"); v != "" {
		builder = builder.Device(serp.Device(v))
	}
	if v := ctx.String("safe"); v != "" {
		builder = builder.SafeSearch(serp.SafeSearch(v))
	}
	if ctx.IsSet("offset") {
		builder = builder.Offset(ctx.Int("offset"))
	}

	switch ctx.String("type") {
	case "", "web":
		if v := ctx.String("location"); v != "" {
			builder = builder.Location(v)
		}
	case "images":
		builder = builder.Images()
	case "videos":
		builder = builder.Videos()
	case "news":
		builder = builder.News()
	case "shopping":
		builder = builder.Shopping()
	case "local":
		builder = builder.Local(ctx.String("location"))
	default:
		return cli.Exit("unknown search type: "+ctx.String("type"), 2)
	}

	query, err := builder.Build()
	if err != nil {
		return err
	}

	stream, err := client.Stream(query, serp.StreamConfig{
		PageSize: ctx.Int("page-size"),
		MaxPages: ctx.Int("pages"),
		Delay:    ctx.Duration("delay"),
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	n := 0
	for stream.Next(ctx.Context) {
		page := stream.Page()
		if ctx.Bool("json") {
			if err := enc.Encode(page); err != nil {
				return err
			}
			continue
		}
		for _, r := range page.OrganicResults {
			n++
			fmt.Printf("%3d. %s\n     %s\n", n, r.Title, r.Link)
		}
	}
	return stream.Err()
}
