package main

import (
	"fmt"
	"os"

	"spritemix/palette"
	"spritemix/scramble"
)

type listCmd struct {
	Colors bool `help:"Also print the colors of every palette" short:"c"`
}

func (c *listCmd) Run(engine *scramble.Engine, set *palette.Set) error {
	for _, name := range engine.ListPalettes() {
		pal, err := set.Get(name)
		if err != nil {
			return err
		}

		if c.Colors {
			fmt.Printf("%s\t%d\t%v\n", name, pal.Len(), pal.Hex())
		} else {
			fmt.Printf("%s\t%d\n", name, pal.Len())
		}
	}
	return nil
}

type exportCmd struct {
	Palette string `arg:"" help:"Name of the palette to export"`
	Out     string `arg:"" help:"Destination .pal file" type:"path"`
	Force   bool   `help:"Overwrite the destination if it exists"`
}

func (c *exportCmd) Run(set *palette.Set) (err error) {
	pal, err := set.Get(c.Palette)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(c.Out, flags, 0o644)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", c.Out, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close %q: %w", c.Out, closeErr)
		}
	}()

	if _, err = palette.WriteRIFF(f, pal); err != nil {
		return err
	}
	return nil
}
