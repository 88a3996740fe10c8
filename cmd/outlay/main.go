package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"outlay/internal/cli"
	"outlay/internal/core"
	"outlay/internal/log"
	"outlay/internal/store"
)

const usage = `Usage: outlay <command> [flags]

Commands:
  add         record an expense
  list        list expenses matching the current filters
  delete      delete an expense by id
  summary     show totals (overview, categories, monthly, weekly)
  categories  list categories, or add one with -add
  filter      set the active filters
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.DefaultConfig().Level)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel())

	result := cli.OpenBackend(logger, cfg)
	s := store.New(result.Persister, store.WithLogger(logger))

	ctx := context.Background()
	s.Load(ctx)

	code := run(ctx, s, os.Args[1], os.Args[2:])

	reportWarnings(s)
	if err := s.Close(); err != nil {
		logger.Error("Failed to flush state", log.FieldError, err)
	}
	if result.Cleanup != nil {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}
	os.Exit(code)
}

func run(ctx context.Context, s *store.Store, command string, args []string) int {
	switch command {
	case "add":
		return cmdAdd(ctx, s, args)
	case "list":
		return cmdList(s)
	case "delete":
		return cmdDelete(ctx, s, args)
	case "summary":
		return cmdSummary(s, args)
	case "categories":
		return cmdCategories(ctx, s, args)
	case "filter":
		return cmdFilter(ctx, s, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

func cmdAdd(ctx context.Context, s *store.Store, args []string) int {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "expense title")
	amount := fs.String("amount", "", "amount, e.g. 4.50")
	category := fs.String("category", "", "category name")
	date := fs.String("date", time.Now().UTC().Format("2006-01-02"), "date (YYYY-MM-DD)")
	description := fs.String("description", "", "optional description")
	fs.Parse(args)

	rec, err := s.AddExpense(ctx, store.Draft{
		Title:       *title,
		Amount:      *amount,
		Category:    *category,
		Date:        *date,
		Description: *description,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot add expense: %v\n", err)
		return 1
	}
	fmt.Printf("added %s  %s  %s  (%s)\n", rec.ID, rec.Title, rec.Amount.Format(), rec.Date.Display())
	return 0
}

func cmdList(s *store.Store) int {
	records := s.Filtered()
	spec := s.Filters()
	fmt.Printf("%s — %d expenses, %s total\n",
		spec.RangeLabel(time.Now()), len(records), core.Total(records).Format())
	for _, r := range records {
		fmt.Printf("  %-36s  %s  %-12s  %-20s  %s\n",
			r.ID, r.Date.String(), r.Amount.Format(), r.Category, r.Title)
	}
	return 0
}

func cmdDelete(ctx context.Context, s *store.Store, args []string) int {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "expense id")
	fs.Parse(args)

	if s.DeleteExpense(ctx, *id) {
		fmt.Printf("deleted %s\n", *id)
	} else {
		fmt.Printf("no expense with id %s\n", *id)
	}
	return 0
}

func cmdSummary(s *store.Store, args []string) int {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	view := fs.String("view", "overview", "overview | categories | monthly | weekly")
	fs.Parse(args)

	switch *view {
	case "overview":
		stats := s.Stats()
		fmt.Printf("Total        %12s  (%d expenses)\n", stats.Total.Format(), stats.Count)
		fmt.Printf("This week    %12s  (%d expenses)\n", stats.ThisWeek.Format(), stats.WeekCount)
		fmt.Printf("This month   %12s  (%d expenses)\n", stats.ThisMonth.Format(), stats.MonthCount)
		fmt.Printf("This year    %12s  (%d expenses)\n", stats.ThisYear.Format(), stats.YearCount)
	case "categories":
		buckets := s.CategoryView()
		total := core.Total(s.Expenses())
		for _, b := range buckets {
			fmt.Printf("%-20s %12s  %5.1f%%  (%d expenses)\n",
				b.Label, b.Total.Format(), core.Percent(b.Total, total), b.Count)
		}
	case "monthly":
		printPeriods(lastN(s.MonthlyView(), 12))
	case "weekly":
		printPeriods(lastN(s.WeeklyView(), 8))
	default:
		fmt.Fprintf(os.Stderr, "unknown view %q\n", *view)
		return 2
	}
	return 0
}

func printPeriods(buckets []core.Bucket) {
	for _, b := range buckets {
		fmt.Printf("%-24s %12s  (%d expenses, avg %s)\n",
			b.Label, b.Total.Format(), b.Count, b.Average().Format())
	}
}

// lastN keeps the most recent n buckets of a chronological sequence.
// Truncation is a display concern; the aggregation engine never trims.
func lastN(buckets []core.Bucket, n int) []core.Bucket {
	if len(buckets) <= n {
		return buckets
	}
	return buckets[len(buckets)-n:]
}

func cmdCategories(ctx context.Context, s *store.Store, args []string) int {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	add := fs.String("add", "", "append a new category")
	fs.Parse(args)

	if *add != "" {
		if s.AddCategory(ctx, *add) {
			fmt.Printf("added category %q\n", *add)
		} else {
			fmt.Printf("category %q already exists\n", *add)
		}
	}
	for _, c := range s.Categories() {
		fmt.Println(c)
	}
	return 0
}

func cmdFilter(ctx context.Context, s *store.Store, args []string) int {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	category := fs.String("category", "", "category to filter on, empty for all")
	dateRange := fs.String("range", "", "all | week | month | year | custom")
	start := fs.String("start", "", "custom range start (YYYY-MM-DD)")
	end := fs.String("end", "", "custom range end (YYYY-MM-DD)")
	fs.Parse(args)

	var patch core.FilterPatch
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	if seen["category"] {
		patch.Category = category
	}
	if seen["range"] {
		r := core.DateRange(*dateRange)
		if !r.IsValid() {
			fmt.Fprintf(os.Stderr, "unknown range %q\n", *dateRange)
			return 2
		}
		patch.Range = &r
	}
	if seen["start"] {
		d, err := core.ParseDate(*start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad start date: %v\n", err)
			return 2
		}
		patch.Start = &d
	}
	if seen["end"] {
		d, err := core.ParseDate(*end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad end date: %v\n", err)
			return 2
		}
		patch.End = &d
	}

	s.SetFilters(ctx, patch)
	spec := s.Filters()
	fmt.Printf("filters: category=%q range=%s (%s)\n",
		spec.Category, spec.Range, spec.RangeLabel(time.Now()))
	return 0
}

func reportWarnings(s *store.Store) {
	for {
		select {
		case w := <-s.Warnings():
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", w.Op, w.Err)
		default:
			return
		}
	}
}
