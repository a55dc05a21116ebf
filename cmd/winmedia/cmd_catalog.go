package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mkrail/winmedia/internal/domain-adapters/gateways"
	"github.com/mkrail/winmedia/internal/domain/entities"
	"github.com/mkrail/winmedia/internal/domain/services"
)

func runCatalog(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	var (
		catalogURL = fs.String("url", "", "Catalog CAB URL (default: built-in Microsoft catalog)")
		document   = fs.String("document", "products.xml", "Document name inside the CAB")
		language   = fs.String("language", "", "Filter by language code (e.g., en-us)")
		edition    = fs.String("edition", "", "Filter by edition (e.g., EnterpriseN)")
		arch       = fs.String("arch", "", "Filter by architecture (e.g., x64)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: winmedia catalog [options]

Fetch the Microsoft product catalog and print the entries matching the
filters. With no filters, prints the whole catalog.

Examples:
  winmedia catalog
  winmedia catalog --language en-us --arch x64
  winmedia catalog --edition Professional

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	url := *catalogURL
	if url == "" {
		url = entities.DefaultESDRecipe().Catalog.URL
	}

	client := gateways.NewCatalogClient(gateways.NewConverter(entities.ConvertConfig{}))
	catalogEntries, err := client.FetchEntries(ctx, url, *document)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	criteria := entities.SelectionCriteria{
		Language:     *language,
		Edition:      *edition,
		Architecture: *arch,
	}
	selector := services.NewSelectionService()

	matched := 0
	for i := range catalogEntries {
		if !selector.Matches(&catalogEntries[i], criteria) {
			continue
		}
		matched++
		entry := &catalogEntries[i]
		fmt.Printf("%-14s %-10s %-8s %12d  %s\n",
			entry.Edition, entry.LanguageCode, entry.Architecture, entry.Size, entry.FileName)
	}

	fmt.Fprintf(os.Stderr, "\n%d of %d entries matched\n", matched, len(catalogEntries))
}
