package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

type options struct {
	font          string
	fontSize      float64
	scale         float64
	character     string
	textfile      string
	charset       string
	customCharset string
	background    string
	seed          uint64
	seeded        bool
	maxWidth      int
	sharpen       bool
	workers       int
	quiet         bool
	verbose       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "img2ascii [flags] <input> <output>",
		Short: "Redraw an image as a grid of letters tinted with its colors",
		Long: "img2ascii redraws an image as a grid of characters, each tinted with the\n" +
			"average color of the region it covers. Characters are random letters from\n" +
			"a charset, one fixed character (--character), or the letters of a text\n" +
			"file in order (--textfile). Monospaced fonts give the best results.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return run(cmd, opts, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.font, "font", "f", "", "TTF/OTF font file (default: embedded Go Mono)")
	f.Float64Var(&opts.fontSize, "font-size", 12, "font size in points, sets the cell size")
	f.Float64VarP(&opts.scale, "scale", "s", 1.0, "output scale relative to the input")
	f.StringVarP(&opts.character, "character", "c", "", "draw this one character in every cell")
	f.StringVar(&opts.textfile, "textfile", "", "draw the letters of this text file in order")
	f.StringVar(&opts.charset, "charset", img2ascii.DefaultCharset,
		"charset for random letters: "+strings.Join(img2ascii.CharsetNames(), ", "))
	f.StringVar(&opts.customCharset, "custom-charset", "", "file whose characters form the random charset")
	f.StringVarP(&opts.background, "background", "b", "#000000", "background color")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for reproducible random letters")
	f.IntVar(&opts.maxWidth, "max-width", 0, "shrink the input to at most this many pixels wide first")
	f.BoolVar(&opts.sharpen, "sharpen", false, "sharpen the input before sampling")
	f.IntVarP(&opts.workers, "workers", "j", runtime.GOMAXPROCS(0), "rows rendered in parallel")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not draw a progress bar")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.MarkFlagsMutuallyExclusive("character", "textfile")

	return cmd
}

func run(cmd *cobra.Command, opts *options, input, output string) error {
	stderr := cmd.ErrOrStderr()
	if opts.verbose {
		img2ascii.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	background, err := img2ascii.ParseHexColor(opts.background)
	if err != nil {
		return err
	}
	src, err := buildSource(opts)
	if err != nil {
		return err
	}
	fnt, err := loadFont(opts.font)
	if err != nil {
		return err
	}

	rgba, err := imageutil.LoadImage(input)
	if err != nil {
		return err
	}
	img := imageutil.FitWidth(rgba, opts.maxWidth)
	if opts.sharpen {
		img = imageutil.Sharpen(imageutil.ToRGBA(img))
	}

	rendererOpts := []img2ascii.RendererOption{
		img2ascii.WithFont(fnt),
		img2ascii.WithFontSize(opts.fontSize),
		img2ascii.WithScale(opts.scale),
		img2ascii.WithSource(src),
		img2ascii.WithBackground(background),
		img2ascii.WithWorkers(opts.workers),
	}
	var bar *progressBar
	if !opts.quiet && isTerminal(stderr) {
		bar = newProgressBar(stderr)
		rendererOpts = append(rendererOpts, img2ascii.WithProgress(bar.Update))
	}

	res, err := img2ascii.NewRenderer(rendererOpts...).Render(img)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	if res.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(stderr,
			"warning: %d of %d cells left blank, glyphs missing from font\n",
			res.Skipped, res.Grid.Len())
	}

	if err := imageutil.SaveImage(res.Canvas, output); err != nil {
		return err
	}
	if opts.verbose {
		fmt.Fprintf(stderr, "wrote %s (%dx%d, %dx%d cells)\n", output,
			res.Grid.Width, res.Grid.Height, res.Grid.Cols, res.Grid.Rows)
	}
	return nil
}

// buildSource picks the character source from the mode flags: text file,
// fixed character, or random letters.
func buildSource(opts *options) (img2ascii.Source, error) {
	switch {
	case opts.textfile != "":
		text, err := img2ascii.NewTextFile(opts.textfile)
		if err != nil {
			return nil, err
		}
		return text, nil
	case opts.character != "":
		runes := []rune(opts.character)
		if len(runes) != 1 {
			return nil, &img2ascii.InvalidConfigError{
				Field:  "character",
				Value:  opts.character,
				Reason: "want exactly one character",
			}
		}
		return img2ascii.NewFixed(runes[0]), nil
	}

	var charset []rune
	var err error
	if opts.customCharset != "" {
		data, readErr := os.ReadFile(opts.customCharset)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read custom charset: %w", readErr)
		}
		charset, err = img2ascii.CustomCharset(string(data))
	} else {
		charset, err = img2ascii.Charset(opts.charset)
	}
	if err != nil {
		return nil, err
	}

	var random *img2ascii.Random
	if opts.seeded {
		random, err = img2ascii.NewSeededRandom(charset, opts.seed)
	} else {
		random, err = img2ascii.NewRandom(charset)
	}
	if err != nil {
		return nil, err
	}
	return random, nil
}

func loadFont(path string) (*img2ascii.Font, error) {
	if path == "" {
		return img2ascii.DefaultFont()
	}
	return img2ascii.LoadFontFile(path)
}
