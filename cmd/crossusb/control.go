package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shini4i/crossusb"
	"github.com/shini4i/crossusb/usb"
)

var (
	ctlVendor    string
	ctlProduct   string
	ctlInterface uint8
	ctlType      string
	ctlRecipient string
	ctlRequest   string
	ctlValue     string
	ctlIndex     string
	ctlLength    uint16
	ctlData      string

	controlCmd = &cobra.Command{
		Use:   "control",
		Short: "Issue a single control transfer",
		Long: `control issues one control transfer against the first device matching
--vendor/--product. Without --data the transfer is an IN request reading
--length bytes; with --data (hex encoded) it is an OUT request.`,
		RunE: runControl,
	}
)

func init() {
	controlCmd.Flags().StringVar(&ctlVendor, "vendor", "", "Vendor ID to match")
	controlCmd.Flags().StringVar(&ctlProduct, "product", "", "Product ID to match")
	controlCmd.Flags().Uint8Var(&ctlInterface, "interface", 0, "Interface number to claim")
	controlCmd.Flags().StringVar(&ctlType, "type", "vendor", "Request type: standard, class or vendor")
	controlCmd.Flags().StringVar(&ctlRecipient, "recipient", "interface", "Recipient: device, interface, endpoint or other")
	controlCmd.Flags().StringVar(&ctlRequest, "request", "0", "Request code")
	controlCmd.Flags().StringVar(&ctlValue, "value", "0", "wValue field")
	controlCmd.Flags().StringVar(&ctlIndex, "index", "0", "wIndex field")
	controlCmd.Flags().Uint16Var(&ctlLength, "length", 0, "Read length for IN transfers")
	controlCmd.Flags().StringVar(&ctlData, "data", "", "Hex payload for OUT transfers")
	_ = controlCmd.MarkFlagRequired("vendor")
}

func parseControlType(s string) (usb.ControlType, error) {
	switch s {
	case "standard":
		return usb.ControlStandard, nil
	case "class":
		return usb.ControlClass, nil
	case "vendor":
		return usb.ControlVendor, nil
	}
	return 0, fmt.Errorf("invalid --type %q", s)
}

func parseRecipient(s string) (usb.Recipient, error) {
	switch s {
	case "device":
		return usb.RecipientDevice, nil
	case "interface":
		return usb.RecipientInterface, nil
	case "endpoint":
		return usb.RecipientEndpoint, nil
	case "other":
		return usb.RecipientOther, nil
	}
	return 0, fmt.Errorf("invalid --recipient %q", s)
}

func runControl(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(ctlVendor, ctlProduct, "")
	if err != nil {
		return err
	}
	typ, err := parseControlType(ctlType)
	if err != nil {
		return err
	}
	recipient, err := parseRecipient(ctlRecipient)
	if err != nil {
		return err
	}
	request, err := parseID8("request", ctlRequest)
	if err != nil {
		return err
	}
	value, err := parseID16("value", ctlValue)
	if err != nil {
		return err
	}
	index, err := parseID16("index", ctlIndex)
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

	intf, err := dev.OpenInterface(ctx, ctlInterface)
	if err != nil {
		return err
	}
	defer func() { _ = intf.Release() }()

	if ctlData != "" {
		payload, err := hex.DecodeString(ctlData)
		if err != nil {
			return fmt.Errorf("invalid --data payload: %w", err)
		}
		n, err := intf.ControlOut(ctx, usb.ControlOut{
			Type:      typ,
			Recipient: recipient,
			Request:   request,
			Value:     value,
			Index:     index,
			Data:      payload,
		})
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d of %d bytes\n", n, len(payload))
		return nil
	}

	data, err := intf.ControlIn(ctx, usb.ControlIn{
		Type:      typ,
		Recipient: recipient,
		Request:   request,
		Value:     value,
		Index:     index,
		Length:    ctlLength,
	})
	if err != nil {
		return err
	}
	fmt.Printf("read %d bytes: %s\n", len(data), hex.EncodeToString(data))
	return nil
}
