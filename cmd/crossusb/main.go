// Package main provides a small CLI for inspecting and exercising USB
// devices through the crossusb library.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shini4i/crossusb/usb"
)

var (
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "crossusb",
		Short: "Inspect and exercise USB devices",
		Long: `crossusb lists USB devices and issues control, bulk and interrupt
transfers against them, using the same device API the crossusb library
exposes to applications.

Numeric flag values accept decimal or 0x-prefixed hexadecimal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.AddCommand(listCmd, controlCmd, pollCmd)
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// parseID16 parses a vendor/product style numeric flag.
func parseID16(name, value string) (uint16, error) {
	v, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", name, value, err)
	}
	return uint16(v), nil
}

func parseID8(name, value string) (uint8, error) {
	v, err := strconv.ParseUint(value, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", name, value, err)
	}
	return uint8(v), nil
}

// filterFromFlags builds one DeviceFilter from whichever of the flags are
// set. With no flags set the filter matches every device on the bus.
func filterFromFlags(vendor, product, class string) (usb.DeviceFilter, error) {
	var f usb.DeviceFilter
	if vendor != "" {
		v, err := parseID16("vendor", vendor)
		if err != nil {
			return f, err
		}
		f.VendorID = usb.ID16(v)
	}
	if product != "" {
		p, err := parseID16("product", product)
		if err != nil {
			return f, err
		}
		f.ProductID = usb.ID16(p)
	}
	if class != "" {
		c, err := parseID8("class", class)
		if err != nil {
			return f, err
		}
		f.Class = usb.ID8(c)
	}
	return f, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}
