// Command calibrate estimates adaptive proportion cutoffs by simulation.  For a grid of biased
// sources with known min-entropy it simulates many test windows, compares the analytic cutoff
// against the empirical tail of the window counts, and writes the results to a file for review.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/BTBurke/entropic/pkg/health"
	"github.com/BTBurke/entropic/pkg/rng"
	"github.com/montanaflynn/stats"
)

const (
	// Windows is the number of simulated test windows per bias level
	Windows int = 100000
	// Window is the adaptive proportion window size for non-binary sources
	Window int = 512
	// Alphabet is the symbol alphabet size of the simulated sources
	Alphabet int = 256
	// Percentile of the window count distribution reported as the empirical cutoff
	Percentile float64 = 99.99
)

var wg sync.WaitGroup

type row struct {
	h         float64
	analytic  int
	empirical float64
	alarmRate float64
}

type results struct {
	name string
	mu   sync.Mutex
	rows []row
}

func (r *results) record(rw row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, rw)
}

func newResults(name string) *results {
	return &results{name: name}
}

func main() {
	res := newResults("apt-cutoff")
	start := time.Now()
	for _, p := range []float64{0.9, 0.7, 0.5, 0.3, 0.1, 0.05, 1.0 / float64(Alphabet)} {
		wg.Add(1)
		log.Printf("start p=%f\n", p)
		go simulate(res, p)
	}
	wg.Wait()
	fmt.Printf("Time Elapsed: %v\n", time.Since(start))

	res.mu.Lock()
	sort.Slice(res.rows, func(i, j int) bool { return res.rows[i].h < res.rows[j].h })
	var b bytes.Buffer
	b.WriteString("# h analytic_cutoff empirical_cutoff alarm_rate\n")
	for _, rw := range res.rows {
		b.WriteString(fmt.Sprintf("%f %d %f %f\n", rw.h, rw.analytic, rw.empirical, rw.alarmRate))
	}
	res.mu.Unlock()
	if err := os.WriteFile(fmt.Sprintf("%s.txt", res.name), b.Bytes(), 0644); err != nil {
		log.Fatalf("could not write results: %v", err)
	}
}

// simulate runs Windows adaptive proportion windows against a source biased toward one symbol
// with probability p and records the analytic cutoff next to the empirical tail
func simulate(results *results, p float64) {
	defer wg.Done()

	src := rng.NewBiasedSource(Alphabet, p)
	h := src.MinEntropy()
	analytic := health.APTCutoff(h, Window)

	counts := make([]float64, Windows)
	alarms := 0
	for i := 0; i < Windows; i++ {
		ref := src.Next()
		count := 1
		for j := 1; j < Window; j++ {
			if src.Next() == ref {
				count++
			}
		}
		counts[i] = float64(count)
		if count >= analytic {
			alarms++
		}
	}

	empirical, err := stats.Percentile(counts, Percentile)
	if err != nil {
		log.Fatalf("could not compute percentile: %v", err)
	}
	rate := float64(alarms) / float64(Windows)
	fmt.Printf("Result: h=%1.3f analytic=%d empirical=%1.1f rate=%1.6f\n", h, analytic, empirical, rate)
	results.record(row{h: h, analytic: analytic, empirical: empirical, alarmRate: rate})
}
