package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	errorsGo "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/obzva/bicubic"
)

var rootCmd = &cobra.Command{
	Use:   "bicubic <inputPath> <newWidth> <newHeight>",
	Short: "resize an image with bicubic interpolation",
	Long: `Resize an image with bicubic interpolation.

The resized image is written to the path given by --output; its extension
selects the format (png, jpg/jpeg, bmp, tif/tiff).`,
	Example: `  bicubic inputImage.png 2048 1024 --workers 6`,
	Args:    dimensionArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(resizeFunc(args))
	},
}

var (
	workersFlag int
	outputFlag  string
	debugFlag   bool
	verboseFlag bool
)

func init() {
	rootCmd.Flags().IntVarP(&workersFlag, `workers`, `w`, bicubic.DefaultWorkers, `number of resize workers (<= 0 uses all CPUs)`)
	rootCmd.Flags().StringVarP(&outputFlag, `output`, `o`, `output.png`, `output file`)
	rootCmd.Flags().BoolVarP(&debugFlag, `debug`, `d`, false, `print error stack traces`)
	rootCmd.Flags().BoolVarP(&verboseFlag, `verbose`, `v`, false, `log resize progress to stderr`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// dimensionArgs accepts exactly an input path followed by two positive integers.
func dimensionArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(3)(cmd, args); err != nil {
		return err
	}
	_, _, err := parseDimensions(args[1], args[2])
	return err
}

func parseDimensions(widthStr, heightStr string) (width, height int, err error) {
	width, err = strconv.Atoi(widthStr)
	if err != nil || width <= 0 {
		return 0, 0, errorsGo.WrapPrefix(bicubic.ErrInvalidDimension, fmt.Sprintf("newWidth %q", widthStr), 0)
	}
	height, err = strconv.Atoi(heightStr)
	if err != nil || height <= 0 {
		return 0, 0, errorsGo.WrapPrefix(bicubic.ErrInvalidDimension, fmt.Sprintf("newHeight %q", heightStr), 0)
	}
	return width, height, nil
}

func newLogger() *slog.Logger {
	lvl := slog.LevelWarn
	if verboseFlag {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func resizeFunc(args []string) func() error {
	return func() error {
		width, height, err := parseDimensions(args[1], args[2])
		if err != nil {
			return err
		}
		// fail on a bad output name before doing any work
		if _, err := bicubic.FormatFromName(outputFlag); err != nil {
			return err
		}
		img := bicubic.New(bicubic.WithWorkers(workersFlag), bicubic.WithLogger(newLogger()))
		if err := img.Load(args[0]); err != nil {
			return err
		}
		if err := img.Resize(width, height); err != nil {
			return err
		}
		return img.Save(outputFlag)
	}
}

func run(fn func() error) {
	var err error
	if fn == nil {
		err = errorsGo.New(`nil func`)
	} else {
		err = fn()
	}
	if err != nil {
		if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
			fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
		} else {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
		}
		os.Exit(1)
	}
}
