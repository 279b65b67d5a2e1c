package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/decibelcooper/rsnmix"
	"github.com/decibelcooper/rsnmix/analysis"
	"github.com/decibelcooper/rsnmix/config"
	"github.com/decibelcooper/rsnmix/correlation"
	"github.com/decibelcooper/rsnmix/histo"
	"github.com/decibelcooper/rsnmix/internal/proioin"
	"github.com/decibelcooper/rsnmix/mixing"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("rsn_mix: ")
	log.SetFlags(0)

	var (
		cfgPath   = flag.String("config", "", "YAML analysis configuration")
		capacity  = flag.Int("capacity", 0, "events kept per mixing bucket (overrides config)")
		minOcc    = flag.Int("minocc", 0, "buffered events needed before mixing (overrides config)")
		title     = flag.String("title", "", "plot title")
		output    = flag.String("output", "out.png", "output plot file")
		rootFile  = flag.String("root", "out.root", "output ROOT file")
		doProfile = flag.Bool("profile", false, "write a CPU profile")
		zEdges    rsnmix.FloatArrayFlags
		centEdges rsnmix.FloatArrayFlags
	)
	flag.Var(&zEdges, "zedges", "vertex-z bin edges, repeatable (overrides config)")
	flag.Var(&centEdges, "centedges", "centrality bin edges, repeatable (overrides config)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProfile {
		defer profile.Start().Stop()
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if zEdges.IsSet() {
		cfg.Pool.VertexZEdges = zEdges.Edges()
	}
	if centEdges.IsSet() {
		cfg.Pool.CentralityEdges = centEdges.Edges()
	}
	if *capacity > 0 {
		cfg.Pool.Capacity = *capacity
	}
	if *minOcc > 0 {
		cfg.Pool.MinOccupancy = *minOcc
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	pool, err := mixing.NewManager(cfg.MixingConfig())
	if err != nil {
		log.Fatal(err)
	}
	corr, err := correlation.New(cfg.Correlation.PhiMin, cfg.Correlation.PhiMax)
	if err != nil {
		log.Fatal(err)
	}

	hc := cfg.Histograms
	pairs := histo.NewPairSet(histo.Binning{N: hc.MassBins, Min: hc.MassMin, Max: hc.MassMax})
	corrs := histo.NewCorrSet(cfg.Correlation.PhiMin, cfg.Correlation.PhiMax)
	task := analysis.NewTask(cfg, pool, corr, pairs, corrs)

	reader := proioin.NewReader(proioin.OptionsFrom(cfg.Selection))
	for _, filename := range flag.Args() {
		log.Printf("input: %s", filename)
		if err := reader.Scan(filename, task.Process); err != nil {
			log.Fatal(err)
		}
	}

	sum := task.Summary()
	stats := pool.Stats()
	log.Printf("events: %d (out of pool range: %d, not mixable: %d)", sum.Events, sum.OutOfRange, sum.NotMixable)
	log.Printf("pairs:  %d same-event, %d mixed from %d partner events", sum.SamePairs, sum.MixedPairs, sum.MixedEvents)
	log.Printf("pool:   %d buckets, %d pushed, %d evicted", stats.Buckets, stats.Pushed, stats.Evicted)

	same := pairs.Mass[histo.Unlike]
	mixed := pairs.Mass[histo.Mixed]
	norm := histo.Normalize(same, mixed, hc.Sideband[0], hc.Sideband[1])
	log.Printf("mixed-event normalisation: %g", norm)
	signal := histo.Subtract(same, mixed, norm)

	objs := pairs.Objects()
	for name, h := range corrs.Objects() {
		objs[name] = h
	}
	objs[signal.Name()] = signal
	if err := histo.WriteROOT(*rootFile, objs); err != nil {
		log.Fatal(err)
	}

	scaledMixed := mixed.Clone()
	scaledMixed.Scale(norm)
	err = histo.SavePlot(*output, *title, "Mass (GeV)",
		histo.Curve{Hist: same, Label: "same event", Color: rsnmix.LineColor(0)},
		histo.Curve{Hist: scaledMixed, Label: "mixed event", Color: rsnmix.LineColor(1)},
		histo.Curve{Hist: signal, Label: "subtracted", Color: rsnmix.LineColor(2)},
		histo.Curve{Hist: pairs.Mass[histo.Rotated], Label: "rotated", Color: rsnmix.LineColor(3)},
	)
	if err != nil {
		log.Fatal(err)
	}
}
