// Package main fits cubic-bezier approximations to the easing curves used
// by the configured variants, for export to CSS or other tooling.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/folio/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ease := flag.String("ease", "", "Fit a single easing instead of every variant's")
	maxEvals := flag.Int("max-evals", 2000, "Maximum number of evaluations per curve")
	method := flag.String("method", "nelder-mead", "Search method: nelder-mead or cmaes")
	outputDir := flag.String("output", "", "Output directory for results (empty = print only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	fitter := &Fitter{Params: NewParamVector(), MaxEvals: *maxEvals, Method: *method}

	var names []string
	if *ease != "" {
		names = []string{*ease}
	} else {
		seen := make(map[string]bool)
		for _, v := range cfg.Variants {
			if e := v.Transition.Ease; !seen[e] {
				seen[e] = true
				names = append(names, e)
			}
		}
		sort.Strings(names)
	}

	fits := make(map[string]FitResult, len(names))
	results := make([]FitResult, 0, len(names))
	for _, name := range names {
		r, err := fitter.Fit(name)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fits[name] = r
		results = append(results, r)
		fmt.Printf("%-14s %s  rms=%.5f max=%.5f evals=%d\n", name, r.Bezier(), r.RMS, r.MaxErr, r.Evals)
	}

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	csvPath := filepath.Join(*outputDir, "easefit.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", csvPath, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(results, f); err != nil {
		log.Fatalf("failed to write %s: %v", csvPath, err)
	}
	fmt.Printf("\nFits saved to: %s\n", csvPath)

	// Config with every variant's ease replaced by its bezier fit
	for name, v := range cfg.Variants {
		if r, ok := fits[v.Transition.Ease]; ok {
			v.Transition.Ease = r.Bezier()
			cfg.Variants[name] = v
		}
	}
	configOutPath := filepath.Join(*outputDir, "bezier_config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write config: %v", err)
	} else {
		fmt.Printf("Bezier config saved to: %s\n", configOutPath)
	}
}
