// Package main reports how uniformly the particle generator covers the
// sphere, per seed and latitude band.
//
// Usage: go run ./cmd/fieldcheck -seeds 10 -output out/
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/folio/config"
	"github.com/pthm-cable/folio/particles"
)

// BandRow is one latitude band of one seed.
type BandRow struct {
	Seed     int64   `csv:"seed"`
	Count    int     `csv:"count"`
	Band     int     `csv:"band"`
	Observed float64 `csv:"observed"`
	Expected float64 `csv:"expected"`
}

// SeedRow summarizes one generated buffer.
type SeedRow struct {
	Seed       int64   `csv:"seed"`
	Count      int     `csv:"count"`
	Chi2       float64 `csv:"chi2"`
	PValue     float64 `csv:"p_value"`
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
}

func check(seed int64, count int, radius float32, bands int) (SeedRow, []BandRow) {
	buf := particles.Generate(count, radius, rand.New(rand.NewSource(seed)))
	chi2, p := particles.BandUniformity(buf, bands)
	mean, std := particles.RadiusSpread(buf)

	counts := particles.LatitudeBands(buf, bands)
	rows := make([]BandRow, bands)
	for i, c := range counts {
		rows[i] = BandRow{Seed: seed, Count: count, Band: i, Observed: c, Expected: float64(count) / float64(bands)}
	}
	return SeedRow{Seed: seed, Count: count, Chi2: chi2, PValue: p, RadiusMean: mean, RadiusStd: std}, rows
}

// checkAll runs check for every seed on a pool of GOMAXPROCS workers.
// Results keep seed order.
func checkAll(seeds []int64, count int, radius float32, bands int) ([]SeedRow, [][]BandRow) {
	summary := make([]SeedRow, len(seeds))
	bandRows := make([][]BandRow, len(seeds))

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(runtime.GOMAXPROCS(0), len(seeds)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				summary[i], bandRows[i] = check(seeds[i], count, radius, bands)
			}
		}()
	}
	for i := range seeds {
		work <- i
	}
	close(work)
	wg.Wait()
	return summary, bandRows
}

func writeCSV[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(rows, f)
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 10, "Number of seeds to generate")
	bands := flag.Int("bands", 12, "Latitude bands")
	mobile := flag.Bool("mobile", false, "Use the mobile particle count")
	alpha := flag.Float64("alpha", 0.001, "Flag seeds whose p-value falls below this")
	outputDir := flag.String("output", "", "Output directory for CSV reports (empty = print only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	count := cfg.Particles.Desktop.Count
	if *mobile {
		count = cfg.Particles.Mobile.Count
	}
	radius := float32(cfg.Particles.Radius)

	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i*1000 + 42)
	}
	summary, perSeed := checkAll(seedList, count, radius, *bands)

	var bandRows []BandRow
	flagged := 0
	for i, s := range summary {
		bandRows = append(bandRows, perSeed[i]...)

		mark := ""
		if s.PValue < *alpha {
			mark = "  <- non-uniform"
			flagged++
		}
		fmt.Printf("seed %6d: chi2=%8.3f p=%.4f radius=%.4f±%.2g%s\n",
			s.Seed, s.Chi2, s.PValue, s.RadiusMean, s.RadiusStd, mark)
	}
	fmt.Printf("\n%d/%d seeds below p=%g (%d points, %d bands)\n", flagged, *seeds, *alpha, count, *bands)

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := writeCSV(filepath.Join(*outputDir, "seeds.csv"), summary); err != nil {
		log.Fatalf("failed to write seeds.csv: %v", err)
	}
	if err := writeCSV(filepath.Join(*outputDir, "bands.csv"), bandRows); err != nil {
		log.Fatalf("failed to write bands.csv: %v", err)
	}
	fmt.Printf("Reports saved to: %s\n", *outputDir)
}
