package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bodgit/pixelformat"
	"github.com/bodgit/pixelformat/batch"
	"github.com/bodgit/pixelformat/colourmap"
	"github.com/bodgit/pixelformat/raw"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const defaultFormat = "rgb888"

var errUnknownOutput = errors.New("pixfmt: output must be .png or .bmp")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// parseFormat accepts the compact notation understood by pixelformat.Parse
// or "colour-map" for the 8 bit indexed format.
func parseFormat(s string, bigEndian bool) (*pixelformat.PixelFormat, error) {
	switch strings.ToLower(s) {
	case "colour-map", "color-map":
		return pixelformat.ColourMap8, nil
	}

	pf, ok := pixelformat.Parse(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", pixelformat.ErrUnparseable, s)
	}
	return pf.WithByteOrder(bigEndian), nil
}

func format(c *cli.Context) (*pixelformat.PixelFormat, error) {
	return parseFormat(c.String("format"), c.Bool("big-endian"))
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func describe(w io.Writer, pf *pixelformat.PixelFormat) error {
	b, err := pf.MarshalBinary()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, pf)
	fmt.Fprintf(w, "  record:    %s\n", hex.EncodeToString(b))
	fmt.Fprintf(w, "  channels:  %d,%d,%d bits\n", pf.RedBits(), pf.GreenBits(), pf.BlueBits())
	fmt.Fprintf(w, "  swap:      %t\n", pf.EndianMismatch())
	fmt.Fprintf(w, "  fast path: %t\n", pf.Is888())

	return nil
}

func encode(in, out string, pf *pixelformat.PixelFormat, colours int, logger *log.Logger) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, kind, err := image.Decode(f)
	if err != nil {
		return err
	}
	logger.Printf("Decoded \"%s\" as %s, %dx%d\n", in, kind, m.Bounds().Dx(), m.Bounds().Dy())

	var cm *colourmap.Map
	if !pf.TrueColour() {
		if cm, err = colourmap.Quantize(m, colours); err != nil {
			return err
		}
		logger.Printf("Quantized to %d colours\n", cm.Len())
	}

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := raw.WriteSnapshot(o, m, pf, cm); err != nil {
		return err
	}

	return o.Close()
}

func decode(in, out string, logger *log.Logger) error {
	var enc func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".png":
		enc = png.Encode
	case ".bmp":
		enc = bmp.Encode
	default:
		return errUnknownOutput
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, pf, err := raw.ReadSnapshot(f)
	if err != nil {
		return err
	}
	logger.Printf("Read %dx%d snapshot in %s\n", m.Bounds().Dx(), m.Bounds().Dy(), pf)

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := enc(o, m); err != nil {
		return err
	}

	return o.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "pixfmt"
	app.Usage = "RFB pixel format conversion utility"
	app.Version = "1.0.0"

	formatFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			EnvVars: []string{"PIXFMT_FORMAT"},
			Value:   defaultFormat,
			Usage:   "pixel format, such as rgb565, bgr233 or colour-map",
		},
		&cli.BoolFlag{
			Name:  "big-endian",
			Usage: "store multi-byte pixels most significant byte first",
		},
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "describe",
			Usage:       "Describe pixel formats",
			Description: "Each FORMAT is validated and printed with its wire record.",
			ArgsUsage:   "[FORMAT...]",
			Flags:       formatFlags,
			Action: func(c *cli.Context) error {
				formats := c.Args().Slice()
				if len(formats) == 0 {
					formats = []string{c.String("format")}
				}

				for _, s := range formats {
					pf, err := parseFormat(s, c.Bool("big-endian"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if err := describe(c.App.Writer, pf); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Convert an image to a raw snapshot",
			Description: "",
			ArgsUsage:   "IMAGE SNAPSHOT",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "colours",
					Value: colourmap.MaxEntries,
					Usage: "maximum colour map entries for colour-map formats",
				},
			}, formatFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				pf, err := format(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := encode(c.Args().Get(0), c.Args().Get(1), pf, c.Int("colours"), newLogger(c)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Convert a raw snapshot to a PNG or BMP image",
			Description: "",
			ArgsUsage:   "SNAPSHOT IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := decode(c.Args().Get(0), c.Args().Get(1), newLogger(c)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Convert every image under a directory to raw snapshots",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					EnvVars: []string{"PIXFMT_WORKERS"},
					Value:   batch.DefaultWorkers,
					Usage:   "number of files to convert concurrently",
				},
			}, formatFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				pf, err := format(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				b := batch.New(pf, newLogger(c), c.Int("workers"))
				if err := b.Convert(ctx, c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
