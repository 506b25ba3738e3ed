// Probe program that runs every PubChem extractor against live data.
// It shows which categories a CID has and which ones PubChem fails to serve.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/compoundscan/internal/model"
	"github.com/ppiankov/compoundscan/internal/pubchem"
	"github.com/ppiankov/compoundscan/internal/worker"
)

type probe struct {
	name string
	run  func(ctx context.Context, cid int) (int, error)
}

func count[T any](fetch func(context.Context, int) ([]T, error)) func(context.Context, int) (int, error) {
	return func(ctx context.Context, cid int) (int, error) {
		items, err := fetch(ctx, cid)
		return len(items), err
	}
}

func main() {
	fmt.Println("=== PubChem Extractor Probe ===")

	// Aspirin, caffeine and a CID with no bioassays
	cids := []int{2244, 2519, 6324}
	if len(os.Args) > 1 {
		cids = cids[:0]
		for _, arg := range os.Args[1:] {
			cid, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid CID %q\n", arg)
				os.Exit(2)
			}
			cids = append(cids, cid)
		}
	}

	cfg := model.DefaultConfig()
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	client := pubchem.NewClient(cfg.PubChem.BaseURL, pubchem.NewFetcher(cfg.HTTP, nil, limiter, nil), nil)

	probes := []probe{
		{model.ColVendors, count(client.Vendors)},
		{model.ColStructures, count(client.Structures)},
		{model.ColBioAssay, count(client.AssaySummaries)},
		{model.ColPatent, count(client.Patents)},
		{model.ColDepositorPatent, count(client.DepositorPatents)},
		{model.ColLiterature, count(client.Literature)},
		{model.ColSynonyms, count(client.Synonyms)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	failures := 0
	for _, cid := range cids {
		fmt.Printf("\nCID %d\n", cid)
		fmt.Println(strings.Repeat("-", 60))

		for _, p := range probes {
			start := time.Now()
			n, err := p.run(ctx, cid)
			took := time.Since(start).Round(time.Millisecond)
			if err != nil {
				failures++
				fmt.Printf("  ✗ %-28s %v (%s)\n", p.name, err, took)
				continue
			}
			fmt.Printf("  ✓ %-28s %d items (%s)\n", p.name, n, took)
		}
	}

	fmt.Println("\n=== Probe Complete ===")
	if failures > 0 {
		fmt.Printf("%d extractor calls failed; the pipeline would write empty values for them.\n", failures)
	}
}
