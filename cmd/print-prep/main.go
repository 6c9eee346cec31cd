// Command print-prep prepares photos for printing and performs other
// bulk image operations.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	printprep "github.com/menta2k/print-prep"
	"github.com/menta2k/print-prep/internal/pathutil"
	"github.com/menta2k/print-prep/pkg/exiftag"
	"github.com/menta2k/print-prep/pkg/layout"
	"github.com/menta2k/print-prep/pkg/pipeline"
	"github.com/menta2k/print-prep/pkg/render"
	"github.com/menta2k/print-prep/pkg/scaling"
	"github.com/menta2k/print-prep/pkg/units"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "prep":
		runPrep(os.Args[2:])
	case "scale":
		runScale(os.Args[2:])
	case "list":
		runList(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("print-prep %s\n", printprep.Version)
	case "help", "-h", "-help", "--help":
		printUsage()
	default:
		log.Fatalf("unknown command %q, use one of (prep|scale|list)", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `usage: %s <command> [options]

Commands:
  prep    prepare images for printing: layout, borders, cut marks,
          test pattern and metadata text
  scale   scale images to an absolute or relative size
  list    list the files matched by the input patterns

Use '%s <command> -h' for options of a command.
`, filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
}

// multiFlag collects repeated string flags.
type multiFlag []string

func (m *multiFlag) String() string {
	return fmt.Sprintf("%v", []string(*m))
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

// ioFlags are the flags shared by all file-processing commands.
type ioFlags struct {
	input    multiFlag
	output   string
	quality  int
	lossless bool
	threads  int
	dpi      float64
}

func (f *ioFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.input, "input", "input file or pattern, repeatable (quote patterns on Unix)")
	fs.StringVar(&f.output, "output", "", "output path pattern, `*` standing for the input base name")
	fs.IntVar(&f.quality, "quality", 95, "JPEG/WebP output quality in percent (1-100)")
	fs.BoolVar(&f.lossless, "lossless", false, "lossless WebP output")
	fs.IntVar(&f.threads, "threads", 0, "number of parallel workers, 0 = number of processors")
	fs.Float64Var(&f.dpi, "dpi", printprep.DefaultDPI, "image resolution for sizes not in px")
}

func (f *ioFlags) files() []string {
	if len(f.input) == 0 {
		log.Fatalf("no input files, use -input")
	}
	if f.output == "" {
		log.Fatalf("no output pattern, use -output")
	}
	files, err := pathutil.ExpandPatterns(f.input)
	if err != nil {
		log.Fatal(err)
	}
	return files
}

func runPrep(args []string) {
	fs := flag.NewFlagSet("prep", flag.ExitOnError)
	var iof ioFlags
	iof.register(fs)

	format := fs.String("format", "", "print format `width/height`, e.g. `10cm/15cm` (required); cm formats snap to exact print formats in inches")
	imageSize := fs.String("image-size", "", "maximum image size `width/height`, excluding the border")
	framedSize := fs.String("framed-size", "", "maximum border+image size `width/height`")
	border := fs.String("border", "", "border width, e.g. `2mm` or `1mm/2mm/1mm/2mm`")
	padding := fs.String("padding", "", "padding between border and cut region")
	margin := fs.String("margin", "", "margin between cut region and format edge")
	cutMarks := fs.String("cut-marks", "", "corner trim marks `width/offset[/length]`")
	cutFrame := fs.String("cut-frame", "", "continuous trim outline `width/extension`")
	testPattern := fs.String("test-pattern", "", "calibration pattern `size[/gap]` or `sx/gx/sy/gy`")
	exifTemplate := fs.String("exif", "", "metadata text template, e.g. `{Mod} | ISO {ISO}`")
	exifSize := fs.String("exif-size", "", "metadata text height, e.g. `3mm`")
	bg := fs.String("bg", "white", "background color")
	borderColor := fs.String("border-color", "black", "border color")
	markColor := fs.String("color", "black", "color of cut indicators, test pattern and text")
	mode := fs.String("mode", "keep", "scaling mode, one of (keep|stretch|crop|fill)")
	filterName := fs.String("filter", "cubic", "resampling filter, one of (nearest|linear|cubic|gauss|lanczos)")
	incremental := fs.Bool("incremental", false, "scale down in 50% steps, averaging over 2x2 pixels")
	noRotation := fs.Bool("no-rotation", false, "prevent rotating the format to match the source orientation")
	fs.Parse(args)

	if *format == "" {
		log.Fatalf("no print format, use -format")
	}

	opts := printprep.PrepOptions{
		DPI:          iof.dpi,
		ExifTemplate: *exifTemplate,
		Incremental:  *incremental,
		NoRotation:   *noRotation,
	}

	var err error
	if opts.Format, err = units.ParseSize(*format); err != nil {
		log.Fatalf("invalid -format: %v", err)
	}
	if opts.ImageSize, err = parseOptSize(*imageSize); err != nil {
		log.Fatalf("invalid -image-size: %v", err)
	}
	if opts.FramedSize, err = parseOptSize(*framedSize); err != nil {
		log.Fatalf("invalid -framed-size: %v", err)
	}
	if opts.Border, err = units.ParseSides(*border); err != nil {
		log.Fatalf("invalid -border: %v", err)
	}
	if opts.Padding, err = units.ParseSides(*padding); err != nil {
		log.Fatalf("invalid -padding: %v", err)
	}
	if opts.Margin, err = units.ParseSides(*margin); err != nil {
		log.Fatalf("invalid -margin: %v", err)
	}
	if opts.Cut, err = layout.ParseCutSpec(*cutMarks, *cutFrame, iof.dpi); err != nil {
		log.Fatal(err)
	}
	if opts.TestPattern, err = render.ParseTestPattern(*testPattern, iof.dpi); err != nil {
		log.Fatalf("invalid -test-pattern: %v", err)
	}
	if *exifSize != "" {
		if opts.ExifHeight, err = units.ParseLength(*exifSize); err != nil {
			log.Fatalf("invalid -exif-size: %v", err)
		}
	}
	if opts.Mode, err = scaling.ParseMode(*mode); err != nil {
		log.Fatal(err)
	}
	if opts.Filter, err = scaling.ParseFilter(*filterName); err != nil {
		log.Fatal(err)
	}
	if opts.Colors, err = parseColors(*bg, *borderColor, *markColor); err != nil {
		log.Fatal(err)
	}

	prep, err := printprep.NewPrep(opts)
	if err != nil {
		log.Fatal(err)
	}

	process := func(img image.Image, path string) (image.Image, error) {
		return prep.Process(img, readTags(path))
	}
	runBatch(iof, process)
}

func runScale(args []string) {
	fs := flag.NewFlagSet("scale", flag.ExitOnError)
	var iof ioFlags
	iof.register(fs)

	size := fs.String("size", "", "output size `width/height`, e.g. `100px/.` or `./15cm`; use either -size or -scale")
	scaleToken := fs.String("scale", "", "output scale, e.g. `0.5`, `50%` or `20%/10%`; use either -size or -scale")
	mode := fs.String("mode", "keep", "scaling mode, one of (keep|stretch|crop|fill)")
	filterName := fs.String("filter", "cubic", "resampling filter, one of (nearest|linear|cubic|gauss|lanczos)")
	incremental := fs.Bool("incremental", false, "scale down in 50% steps, averaging over 2x2 pixels")
	bg := fs.String("bg", "white", "background color for -mode fill")
	fs.Parse(args)

	opts := printprep.ScaleOptions{
		DPI:         iof.dpi,
		Incremental: *incremental,
	}

	var err error
	if opts.Spec, err = units.ParseScaleSpec(*size, *scaleToken); err != nil {
		log.Fatal(err)
	}
	if opts.Mode, err = scaling.ParseMode(*mode); err != nil {
		log.Fatal(err)
	}
	if opts.Filter, err = scaling.ParseFilter(*filterName); err != nil {
		log.Fatal(err)
	}
	if opts.Background, err = units.ParseColor(*bg); err != nil {
		log.Fatal(err)
	}

	scaler, err := printprep.NewScaler(opts)
	if err != nil {
		log.Fatal(err)
	}

	process := func(img image.Image, path string) (image.Image, error) {
		return scaler.Process(img)
	}
	runBatch(iof, process)
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var input multiFlag
	fs.Var(&input, "input", "input file or pattern, repeatable (quote patterns on Unix)")
	fullPath := fs.Bool("path", false, "print the full path instead of the file name")
	absolute := fs.Bool("absolute", false, "print the absolute path")
	fs.Parse(args)

	if len(input) == 0 {
		log.Fatalf("no input files, use -input")
	}
	files, err := pathutil.ExpandPatterns(input)
	if err != nil {
		log.Fatal(err)
	}

	for _, file := range files {
		switch {
		case *absolute:
			abs, err := filepath.Abs(file)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(abs)
		case *fullPath:
			fmt.Println(file)
		default:
			fmt.Println(filepath.Base(file))
		}
	}
}

// runBatch processes all matched files through the worker pool and
// reports the outcome. A per-file failure never aborts the batch.
func runBatch(iof ioFlags, process pipeline.ProcessFunc) {
	files := iof.files()

	report, err := pipeline.Run(context.Background(), files, process, pipeline.Options{
		OutputPattern: iof.output,
		Workers:       iof.threads,
		Quality:       iof.quality,
		Lossless:      iof.lossless,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, res := range report.Results {
		if res.Err != nil {
			log.Printf("FAILED %s: %v", res.Input, res.Err)
		} else {
			log.Printf("wrote %s", res.Output)
		}
	}
	log.Printf("%d of %d files processed", report.Succeeded(), len(files))
	if report.Failed() > 0 {
		os.Exit(1)
	}
}

// readTags extracts the EXIF tags of an image file. Files without
// readable metadata yield an empty map.
func readTags(path string) *exiftag.TagMap {
	f, err := os.Open(path)
	if err != nil {
		return exiftag.NewTagMap()
	}
	defer f.Close()
	return exiftag.ExtractTags(f)
}

func parseOptSize(token string) (*units.Size, error) {
	if token == "" {
		return nil, nil
	}
	s, err := units.ParseSize(token)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func parseColors(bg, border, mark string) (render.Colors, error) {
	var colors render.Colors
	c, err := units.ParseColor(bg)
	if err != nil {
		return colors, fmt.Errorf("invalid -bg: %w", err)
	}
	colors.Background = c.NRGBA()
	if c, err = units.ParseColor(border); err != nil {
		return colors, fmt.Errorf("invalid -border-color: %w", err)
	}
	colors.Border = c.NRGBA()
	if c, err = units.ParseColor(mark); err != nil {
		return colors, fmt.Errorf("invalid -color: %w", err)
	}
	colors.Mark = c.NRGBA()
	return colors, nil
}
