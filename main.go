package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spritemix/mix"
	"spritemix/palette"
	"spritemix/parallel"
	"spritemix/scramble"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Palettes   string   `help:"JSON file mapping palette names to lists of #RRGGBB colors" default:"color-palettes.json" env:"SPRITEMIX_PALETTES" type:"path"`
	Pal        []string `help:"Additional palettes in RIFF PAL format, named after the file"`
	Workers    int      `help:"Number of files processed in parallel, 0 for one per CPU" default:"0"`
	RowWorkers int      `help:"Number of goroutines sharing the rows of a single image" default:"1"`
	LogLevel   string   `help:"Minimum log level" enum:"debug,info,warn,error" default:"info"`
	LogJSON    bool     `help:"Log in JSON instead of text"`

	Mix    mix.CLICmd `cmd:"" help:"Scramble the colors of every image in a folder"`
	List   listCmd    `cmd:"" help:"List the available palettes"`
	Export exportCmd  `cmd:"" help:"Save a palette in RIFF PAL format"`
}

func setupLogging(level string, json bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
	scramble.SetLogger(slog.Default())
}

func loadPalettes(config string, palFiles []string) (*palette.Set, error) {
	set, err := palette.LoadFile(config)
	if err != nil {
		return nil, err
	}

	for _, name := range palFiles {
		if err = addRIFF(set, name); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func addRIFF(set *palette.Set, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette", "file", name, "error", closeErr)
		}
	}()

	base := filepath.Base(name)
	pal, err := palette.ReadRIFF(strings.TrimSuffix(base, filepath.Ext(base)), f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return set.Add(pal)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("spritemix"),
		kong.Description("Scramble image colors across a named palette."),
		kong.UsageOnError(),
		kong.Vars{"strategies": strings.Join(scramble.Strategies(), ", ")},
	)

	setupLogging(cli.LogLevel, cli.LogJSON)

	set, err := loadPalettes(cli.Palettes, cli.Pal)
	if err != nil {
		slog.Error("could not load palettes", "config", cli.Palettes, "error", err)
		os.Exit(1)
	}

	engine := scramble.New(set, scramble.WithWorkers(cli.RowWorkers))
	pool := parallel.Start(cli.Workers)
	defer pool.Cancel()

	err = kctx.Run(set, engine, pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
