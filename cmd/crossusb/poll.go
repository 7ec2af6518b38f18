package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/shini4i/crossusb"
	"github.com/shini4i/crossusb/usb"
)

var (
	pollVendor    string
	pollProduct   string
	pollInterface uint8
	pollEndpoint  string
	pollLength    int
	pollCount     int
	pollHz        float64

	pollCmd = &cobra.Command{
		Use:   "poll",
		Short: "Repeatedly read an interrupt IN endpoint",
		Long: `poll claims an interface and reads its interrupt IN endpoint in a loop,
printing each report as hex. The poll rate is capped with --hz so a
misbehaving device cannot saturate the bus.`,
		RunE: runPoll,
	}
)

func init() {
	pollCmd.Flags().StringVar(&pollVendor, "vendor", "", "Vendor ID to match")
	pollCmd.Flags().StringVar(&pollProduct, "product", "", "Product ID to match")
	pollCmd.Flags().Uint8Var(&pollInterface, "interface", 0, "Interface number to claim")
	pollCmd.Flags().StringVar(&pollEndpoint, "endpoint", "0x81", "Interrupt IN endpoint address")
	pollCmd.Flags().IntVar(&pollLength, "length", 64, "Bytes to request per read")
	pollCmd.Flags().IntVar(&pollCount, "count", 10, "Number of reads (0 = until interrupted)")
	pollCmd.Flags().Float64Var(&pollHz, "hz", 10, "Maximum polls per second")
	_ = pollCmd.MarkFlagRequired("vendor")
}

func runPoll(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(pollVendor, pollProduct, "")
	if err != nil {
		return err
	}
	endpoint, err := parseID8("endpoint", pollEndpoint)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	info, err := crossusb.GetDevice(ctx, []usb.DeviceFilter{filter})
	if err != nil {
		return err
	}
	dev, err := info.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	intf, err := dev.OpenInterface(ctx, pollInterface)
	if err != nil {
		return err
	}
	defer func() { _ = intf.Release() }()

	limiter := rate.NewLimiter(rate.Limit(pollHz), 1)
	for i := 0; pollCount == 0 || i < pollCount; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		data, err := intf.InterruptIn(ctx, endpoint, pollLength)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %s\n", i, hex.EncodeToString(data))
	}
	return nil
}
