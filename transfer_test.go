package crossusb_test

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shini4i/crossusb"
	"github.com/shini4i/crossusb/usb"
	"github.com/shini4i/crossusb/usb/mocks"
)

// claimTestInterface opens a device through a mocked backend and claims
// interface 0 on it.
func claimTestInterface(t *testing.T, ctrl *gomock.Controller) (*crossusb.Interface, *mocks.MockBackendInterface) {
	t.Helper()

	dev, bdev := openTestDevice(t, ctrl)
	t.Cleanup(func() { closeQuietly(t, dev, bdev) })

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(0)).Return(bintf, nil)
	bintf.EXPECT().Release().Return(nil).AnyTimes()

	intf, err := dev.OpenInterface(context.Background(), 0)
	require.NoError(t, err)
	return intf, bintf
}

func TestControlIn_ShortReadIsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	req := usb.ControlIn{Type: usb.ControlVendor, Recipient: usb.RecipientInterface, Request: 0x01, Length: 8}
	bintf.EXPECT().ControlIn(gomock.Any(), req).Return([]byte{1, 2, 3}, nil)

	data, err := intf.ControlIn(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, []byte{1, 2, 3}))
}

func TestControlIn_OverlongReplyRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	req := usb.ControlIn{Length: 2}
	bintf.EXPECT().ControlIn(gomock.Any(), req).Return([]byte{1, 2, 3, 4}, nil)

	_, err := intf.ControlIn(context.Background(), req)
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
}

func TestControlOut_ShortWriteIsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	req := usb.ControlOut{Type: usb.ControlClass, Recipient: usb.RecipientDevice, Data: []byte{1, 2, 3, 4}}
	bintf.EXPECT().ControlOut(gomock.Any(), req).Return(2, nil)

	n, err := intf.ControlOut(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestControlOut_OverlongCountRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	req := usb.ControlOut{Data: []byte{1, 2}}
	bintf.EXPECT().ControlOut(gomock.Any(), req).Return(3, nil)

	_, err := intf.ControlOut(context.Background(), req)
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
}

func TestControlOut_PayloadTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, _ := claimTestInterface(t, ctrl)

	// Never reaches the backend: the payload cannot be described by the
	// 16 bit control length field.
	_, err := intf.ControlOut(context.Background(), usb.ControlOut{Data: make([]byte, 0x10000)})
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
}

func TestBulkIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	bintf.EXPECT().BulkIn(gomock.Any(), uint8(0x81), 64).Return(make([]byte, 10), nil)

	data, err := intf.BulkIn(context.Background(), 0x81, 64)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(data), 64)
}

func TestBulkIn_WrongDirection(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, _ := claimTestInterface(t, ctrl)

	_, err := intf.BulkIn(context.Background(), 0x02, 64)
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
}

func TestBulkIn_NegativeLength(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, _ := claimTestInterface(t, ctrl)

	_, err := intf.BulkIn(context.Background(), 0x81, -1)
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
}

func TestBulkOut_WrongDirection(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, _ := claimTestInterface(t, ctrl)

	_, err := intf.BulkOut(context.Background(), 0x81, []byte{1})
	assert.ErrorIs(t, err, usb.ErrTransferFailed)
}

func TestInterruptTransfers(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	bintf.EXPECT().InterruptIn(gomock.Any(), uint8(0x83), 8).Return([]byte{0xaa}, nil)
	bintf.EXPECT().InterruptOut(gomock.Any(), uint8(0x03), []byte{1, 2}).Return(2, nil)

	data, err := intf.InterruptIn(context.Background(), 0x83, 8)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(data), 8)

	n, err := intf.InterruptOut(context.Background(), 0x03, []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTransfers_AfterRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, _ := claimTestInterface(t, ctrl)

	require.NoError(t, intf.Release())

	_, err := intf.ControlIn(context.Background(), usb.ControlIn{Length: 4})
	assert.ErrorIs(t, err, usb.ErrClosed)

	_, err = intf.BulkOut(context.Background(), 0x02, []byte{1})
	assert.ErrorIs(t, err, usb.ErrClosed)
}

// TestTransfers_SerializedPerInterface checks that transfers issued
// concurrently against one interface never overlap at the backend.
func TestTransfers_SerializedPerInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	intf, bintf := claimTestInterface(t, ctrl)

	var inFlight atomic.Int32
	bintf.EXPECT().BulkIn(gomock.Any(), uint8(0x81), 16).DoAndReturn(
		func(context.Context, uint8, int) ([]byte, error) {
			if inFlight.Add(1) != 1 {
				t.Error("overlapping transfers on one interface")
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return []byte{0}, nil
		},
	).Times(4)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := intf.BulkIn(context.Background(), 0x81, 16)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
