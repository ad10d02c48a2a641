// Command riso pushes an image through the risograph print pipeline.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gogpu/riso"
	"github.com/gogpu/riso/internal/imgio"
)

func main() {
	app := cli.NewApp()

	app.Name = "riso"
	app.Usage = "risograph print simulator"
	app.Version = riso.Version

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log pipeline progress to stderr",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "print",
			Usage:     "Render an image as a multi-pass risograph print",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  "ink",
					Usage: "ink spec: name, name=#hex, #hex, optionally @angle (repeatable)",
				},
				&cli.IntFlag{
					Name:  "auto",
					Usage: "pick N inks from the image instead of --ink",
				},
				&cli.Float64Flag{
					Name:  "pitch",
					Value: 4,
					Usage: "halftone dot pitch in pixels",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: "am",
					Usage: "halftone mode: am or fm",
				},
				&cli.Float64Flag{
					Name:  "scale",
					Value: 1,
					Usage: "density scale multiplier",
				},
				&cli.Float64Flag{
					Name:  "angle",
					Usage: "global screen rotation in degrees",
				},
				&cli.StringFlag{
					Name:  "paper",
					Value: "#f7f4ec",
					Usage: "paper color as #rrggbb",
				},
				&cli.Float64Flag{
					Name:  "opacity",
					Value: 0.85,
					Usage: "ink absorption strength (0-1)",
				},
				&cli.Float64Flag{
					Name:  "grain",
					Value: 0.08,
					Usage: "grain amplitude (0-1)",
				},
				&cli.Float64Flag{
					Name:  "misreg",
					Value: 1.5,
					Usage: "max registration drift in pixels",
				},
				&cli.Float64Flag{
					Name:  "noise",
					Usage: "scuff threshold (0-0.5)",
				},
				&cli.IntFlag{
					Name:  "max-dim",
					Usage: "downscale the source so neither side exceeds N pixels",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "worker goroutines (default: one per CPU)",
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "fixed random seed for reproducible grain and drift",
				},
				&cli.IntFlag{
					Name:  "quality",
					Value: 92,
					Usage: "JPEG quality when output ends in .jpg",
				},
				&cli.StringFlag{
					Name:  "output",
					Value: "print.png",
					Usage: "output file (.png or .jpg)",
				},
			},
			Action: printAction,
		},
		{
			Name:      "palette",
			Usage:     "Suggest an ink palette for an image",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Value: 3,
					Usage: "number of inks to suggest",
				},
				&cli.IntFlag{
					Name:  "max-dim",
					Value: 512,
					Usage: "downscale before quantizing",
				},
			},
			Action: paletteAction,
		},
		{
			Name:  "inks",
			Usage: "List the built-in ink catalog",
			Action: func(c *cli.Context) error {
				for _, name := range riso.CatalogInks() {
					ink := riso.MustInk(name)
					col := ink.Color
					fmt.Printf("%-18s #%02x%02x%02x\n", name,
						uint8(col.R*255), uint8(col.G*255), uint8(col.B*255))
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(c *cli.Context) {
	if c.Bool("verbose") {
		riso.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

func printAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	setupLogging(c)

	img, err := imgio.Load(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	img = imgio.Fit(img, c.Int("max-dim"))
	src := riso.FromImage(img)

	var inks []riso.Ink
	if n := c.Int("auto"); n > 0 {
		inks = riso.SuggestInks(img, n)
	} else {
		for _, spec := range c.StringSlice("ink") {
			ink, err := riso.ParseInk(spec)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			inks = append(inks, ink)
		}
	}
	if len(inks) == 0 {
		// A print with no inks is just paper; almost certainly a
		// mistake from the command line.
		return cli.NewExitError(fmt.Errorf("no inks: pass --ink or --auto N"), 1)
	}

	mode, err := riso.ParseHalftoneMode(c.String("mode"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	hc := riso.HalftoneConfig{
		DotPitch: c.Float64("pitch"),
		Angle:    c.Float64("angle"),
		Scale:    c.Float64("scale"),
		Mode:     mode,
	}
	cc := riso.CompositeConfig{
		Misregistration: c.Float64("misreg"),
		Grain:           c.Float64("grain"),
		InkOpacity:      c.Float64("opacity"),
		Paper:           riso.Hex(c.String("paper")),
		NoiseThreshold:  c.Float64("noise"),
	}

	opts := []riso.RendererOption{riso.WithWorkers(c.Int("workers"))}
	if c.IsSet("seed") {
		opts = append(opts, riso.WithRand(rand.New(rand.NewSource(c.Int64("seed")))))
	}

	r := riso.NewRenderer(opts...)
	defer r.Close()

	out, err := r.Render(src, inks, hc, cc)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := imgio.Save(c.String("output"), out.ToImage(), c.Int("quality")); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func paletteAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	setupLogging(c)

	img, err := imgio.Load(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	img = imgio.Fit(img, c.Int("max-dim"))

	for _, ink := range riso.SuggestInks(img, c.Int("colors")) {
		col := ink.Color
		fmt.Printf("%s\t#%02x%02x%02x\n", ink.Name,
			uint8(col.R*255), uint8(col.G*255), uint8(col.B*255))
	}
	return nil
}
