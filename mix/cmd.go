package mix

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"spritemix/parallel"
	"spritemix/scramble"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan     string            `help:"Source folder to scan" default:"."`
	Dest     string            `help:"Destination folder for scrambled pictures. Relative to scan dir if not absolute." default:"."`
	Palette  string            `help:"Name of the palette to remap onto" required:""`
	Strategy scramble.Strategy `help:"Remapping strategy (${strategies}): regular matches every pixel, sprite assigns colors per distinct color for flat pixel art, hires works on whole image arrays" default:"regular"`
	Seed     int64             `help:"Seed for the palette permutation. Negative picks a new permutation for every image." default:"-1"`
	MaxSize  int               `help:"Shrink images so that neither side exceeds this many pixels, 0 to keep the original size" default:"1000"`
	Format   string            `help:"Output format of scrambled image. If prefixed with 'unsup:' will convert only formats that cannot be written" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.MaxSize < 0 {
		return fmt.Errorf("invalid max size: %d", c.MaxSize)
	}

	return nil
}

func (c *CLICmd) Run(engine *scramble.Engine, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if !slices.Contains(engine.ListPalettes(), c.Palette) {
		return fmt.Errorf("unknown palette %q, available: %s", c.Palette, strings.Join(engine.ListPalettes(), ", "))
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, skippedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if isOutput(file.Name()) {
			skippedCount.Add(1)
			slog.Debug("skipping earlier output", "file", file.Name())
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				out, err := c.process(logger, engine, fileName)
				switch {
				case errors.Is(err, image.ErrFormat):
					skippedCount.Add(1)
					logger.Debug("skipping, not an image")
				case err != nil:
					errCount.Add(1)
					logger.Error("could not scramble image", "error", err)
				default:
					processedCount.Add(1)
					logger.Info("saved", "to", out)
				}
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	failed := errCount.Load()
	slog.Info("stats", "processed", processed, "skipped", skippedCount.Load(), "errors", failed,
		"total", processed+failed)

	if failed > 0 {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}

func (c *CLICmd) process(logger *slog.Logger, engine *scramble.Engine, fileName string) (string, error) {
	imgFile, err := os.Open(filepath.Join(c.Scan, fileName))
	if err != nil {
		return "", fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return "", fmt.Errorf("could not decode image: %w", err)
	}

	img = thumbnail(logger, img, c.MaxSize)

	var opts []scramble.RemapOption
	if c.Seed >= 0 {
		opts = append(opts, scramble.WithSeed(uint64(c.Seed)))
	}

	palLog := logger.With("palette", c.Palette, "strategy", c.Strategy)
	palLog.Info("scrambling colors")
	buf, err := engine.Remap(scramble.FromImage(img), c.Palette, c.Strategy, opts...)
	if err != nil {
		return "", fmt.Errorf("could not remap image: %w", err)
	}

	return save(buf, imgType, c.Format, c.Dest, fileName)
}
