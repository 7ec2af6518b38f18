package nativeusb

import (
	"context"
	"errors"
	"testing"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"

	"github.com/shini4i/crossusb/usb"
)

func TestNormalize_LibusbCodes(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"access denied", gousb.ErrorAccess, usb.ErrPermissionDenied},
		{"busy", gousb.ErrorBusy, usb.ErrBusy},
		{"no device", gousb.ErrorNoDevice, usb.ErrDisconnected},
		{"io", gousb.ErrorIO, usb.ErrDisconnected},
		{"timeout", gousb.ErrorTimeout, usb.ErrTimeout},
		{"pipe", gousb.ErrorPipe, usb.ErrStall},
		{"transfer stall", gousb.TransferStall, usb.ErrStall},
		{"transfer no device", gousb.TransferNoDevice, usb.ErrDisconnected},
		{"transfer timed out", gousb.TransferTimedOut, usb.ErrTimeout},
		{"transfer cancelled", gousb.TransferCancelled, context.Canceled},
		{"context cancelled", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, normalize(tt.in), tt.want)
		})
	}
}

func TestNormalize_FlattensUnknownErrors(t *testing.T) {
	got := normalize(gousb.ErrorNotFound)

	// The message survives, the gousb type does not.
	var code gousb.Error
	assert.False(t, errors.As(got, &code))
	assert.Contains(t, got.Error(), "not found")
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("bulk in", usb.ErrTransferFailed, nil))

	err := mapError("bulk in", usb.ErrTransferFailed, gousb.ErrorPipe)
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
	assert.ErrorIs(t, err, usb.ErrStall)

	var ue *usb.Error
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, "bulk in", ue.Op)
}
