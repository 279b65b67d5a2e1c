package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/rsnmix/config"
	"github.com/decibelcooper/rsnmix/histo"
	"github.com/decibelcooper/rsnmix/internal/proioin"
	"github.com/decibelcooper/rsnmix/mixing"
	"github.com/decibelcooper/rsnmix/pair"
	"github.com/decibelcooper/rsnmix/particle"
)

var (
	cfgPath  = flag.String("config", "", "YAML analysis configuration")
	pTMin    = flag.Float64("minpt", 0, "minimum pair transverse momentum")
	pTMax    = flag.Float64("maxpt", 10, "maximum pair transverse momentum")
	etaLimit = flag.Float64("etalimit", 4, "maximum absolute value of pair eta")
	resLimit = flag.Float64("reslimit", 0.02, "maximum mass resolution in the color map")
	nBinsPT  = flag.Int("nbinspt", 10, "number of bins in transverse momentum")
	nBinsEta = flag.Int("nbinseta", 10, "number of bins in eta")
	title    = flag.String("title", "", "plot title")
	output   = flag.String("output", "out.png", "output file")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("pair_massres: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	resGrid := histo.NewSpreadGrid(*nBinsEta, -*etaLimit, *etaLimit, *nBinsPT, *pTMin, *pTMax)
	resGrid.Empty = *resLimit

	pc := cfg.Pair
	var p pair.Pair
	nTrue := 0
	fill := func(ev mixing.Event) {
		parts := ev.Particles
		for i := range parts {
			for j := range parts {
				if i == j || (pc.SameDaughters() && j < i) {
					continue
				}
				a, b := &parts[i], &parts[j]
				if !a.Matched || !b.Matched || a.Charge*b.Charge >= 0 {
					continue
				}

				p.Fill(a, b, pc.DaughterMasses[0], pc.DaughterMasses[1], pc.ReferenceMass)
				if !p.IsTrue(pc.MotherPDG) {
					continue
				}
				res := p.InvMassResolution(particle.Reco, particle.Truth)
				if res == pair.Undefined {
					continue
				}

				nTrue++
				resGrid.Fill(p.Eta(particle.Truth), p.Pt(particle.Truth), res)
			}
		}
	}

	reader := proioin.NewReader(proioin.OptionsFrom(cfg.Selection))
	if err := reader.Scan(flag.Arg(0), fill); err != nil {
		log.Fatal(err)
	}
	log.Printf("true pairs: %d", nTrue)

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	pl := plot.New()
	pl.Title.Text = *title
	pl.X.Label.Text = "pair eta"
	pl.Y.Label.Text = "pair p_T (GeV)"

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(*resLimit)
	heatMap := plotter.NewHeatMap(resGrid, colorMap.Palette(1000))
	heatMap.Min = 0
	heatMap.Max = *resLimit
	pl.Add(heatMap)
	pl.Draw(dc0)

	pl = plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	pl.Add(colorBar)
	pl.HideX()
	pl.Y.Padding = 0
	pl.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		log.Fatal(err)
	}
}
