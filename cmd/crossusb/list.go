package main

import (
	"fmt"

	"github.com/karalabe/hid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shini4i/crossusb"
	"github.com/shini4i/crossusb/usb"
)

var (
	listVendor  string
	listProduct string
	listClass   string
	listStrings bool
	listHID     bool

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List USB devices matching the filter flags",
		RunE:  runList,
	}
)

func init() {
	listCmd.Flags().StringVar(&listVendor, "vendor", "", "Vendor ID to match")
	listCmd.Flags().StringVar(&listProduct, "product", "", "Product ID to match")
	listCmd.Flags().StringVar(&listClass, "class", "", "Device class to match")
	listCmd.Flags().BoolVar(&listStrings, "strings", false, "Open each device to read its string descriptors")
	listCmd.Flags().BoolVar(&listHID, "hid", false, "Also list HID devices via hidapi (raw enumeration misses OS-claimed HID devices)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(listVendor, listProduct, listClass)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	infos, err := crossusb.FindDevices(ctx, []usb.DeviceFilter{filter})
	if err != nil {
		return err
	}

	details := make([]usb.DeviceInfo, len(infos))
	for i, info := range infos {
		details[i] = info.Info()
	}

	if listStrings {
		// String descriptors need the device opened; do it concurrently,
		// devices that refuse to open just keep their descriptor-only row.
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for i, info := range infos {
			g.Go(func() error {
				dev, err := info.Open(gctx)
				if err != nil {
					log.Debug().Err(err).Stringer("device", info).Msg("Device would not open for string descriptors")
					return nil
				}
				defer func() { _ = dev.Close() }()
				details[i] = dev.Info()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for _, d := range details {
		line := fmt.Sprintf("%s  class %02x/%02x/%02x", d, d.Class, d.SubClass, d.Protocol)
		if d.Manufacturer != "" || d.Product != "" {
			line += fmt.Sprintf("  %s %s", d.Manufacturer, d.Product)
		}
		if d.Serial != "" {
			line += fmt.Sprintf("  serial %s", d.Serial)
		}
		fmt.Println(line)
	}

	if listHID {
		if err := listHIDDevices(filter); err != nil {
			return err
		}
	}
	return nil
}

// listHIDDevices cross-lists devices through the OS HID layer, which sees
// devices the raw USB stack cannot touch because a kernel driver holds them.
func listHIDDevices(filter usb.DeviceFilter) error {
	var vendor, product uint16
	if filter.VendorID != nil {
		vendor = *filter.VendorID
	}
	if filter.ProductID != nil {
		product = *filter.ProductID
	}

	devices, err := hid.Enumerate(vendor, product)
	if err != nil {
		return fmt.Errorf("hid enumeration failed: %w", err)
	}
	for _, d := range devices {
		fmt.Printf("%04x:%04x  hid interface %d  %s %s\n",
			d.VendorID, d.ProductID, d.Interface, d.Manufacturer, d.Product)
	}
	return nil
}
