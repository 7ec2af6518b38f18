package crossusb_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shini4i/crossusb"
	"github.com/shini4i/crossusb/usb"
	"github.com/shini4i/crossusb/usb/mocks"
)

// openTestDevice enumerates and opens one device through a mocked backend.
func openTestDevice(t *testing.T, ctrl *gomock.Controller) (*crossusb.Device, *mocks.MockBackendDevice) {
	t.Helper()

	backend := mocks.NewMockBackend(ctrl)
	bdev := mocks.NewMockBackendDevice(ctrl)

	info := usb.DeviceInfo{VendorID: 0x054c, ProductID: 0x00c9}
	backend.EXPECT().Enumerate(gomock.Any(), gomock.Any()).Return([]usb.DeviceInfo{info}, nil)
	backend.EXPECT().Open(gomock.Any(), info).Return(bdev, nil)
	bdev.EXPECT().Strings().Return("Sony", "Controller", "SN123").AnyTimes()

	infos, err := crossusb.FindDevices(context.Background(), nil, crossusb.WithBackend(backend))
	require.NoError(t, err)
	require.Len(t, infos, 1)

	dev, err := infos[0].Open(context.Background())
	require.NoError(t, err)
	return dev, bdev
}

func TestDeviceInfoOpen_WithoutEnumeration(t *testing.T) {
	_, err := crossusb.DeviceInfo{}.Open(context.Background())
	assert.ErrorIs(t, err, usb.ErrOpenFailed)
}

func TestDeviceOpen_FillsStringDescriptors(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	info := dev.Info()
	assert.Equal(t, "Sony", info.Manufacturer)
	assert.Equal(t, "Controller", info.Product)
	assert.Equal(t, "SN123", info.Serial)
}

func closeQuietly(t *testing.T, dev *crossusb.Device, bdev *mocks.MockBackendDevice) {
	t.Helper()
	bdev.EXPECT().Close().Return(nil).AnyTimes()
	require.NoError(t, dev.Close())
}

func TestOpenInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(1)).Return(bintf, nil)
	bintf.EXPECT().Release().Return(nil).AnyTimes()

	intf, err := dev.OpenInterface(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), intf.Number())
}

func TestOpenInterface_AlreadyClaimed(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(0)).Return(bintf, nil)
	bintf.EXPECT().Release().Return(nil).AnyTimes()

	_, err := dev.OpenInterface(context.Background(), 0)
	require.NoError(t, err)

	_, err = dev.OpenInterface(context.Background(), 0)
	assert.ErrorIs(t, err, usb.ErrClaimFailed)
}

func TestOpenInterface_ReclaimAfterRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(0)).Return(bintf, nil).Times(2)
	bintf.EXPECT().Release().Return(nil).AnyTimes()

	intf, err := dev.OpenInterface(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, intf.Release())

	_, err = dev.OpenInterface(context.Background(), 0)
	require.NoError(t, err)
}

func TestOpenInterface_BackendFailureRollsBackReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	claimErr := usb.WrapOp("claim interface", usb.ErrClaimFailed, errors.New("no interface 5"))
	bintf := mocks.NewMockBackendInterface(ctrl)
	gomock.InOrder(
		bdev.EXPECT().Claim(gomock.Any(), uint8(5)).Return(nil, claimErr),
		bdev.EXPECT().Claim(gomock.Any(), uint8(5)).Return(bintf, nil),
	)
	bintf.EXPECT().Release().Return(nil).AnyTimes()

	_, err := dev.OpenInterface(context.Background(), 5)
	assert.ErrorIs(t, err, usb.ErrClaimFailed)

	// The failed claim must not leave the number reserved.
	_, err = dev.OpenInterface(context.Background(), 5)
	require.NoError(t, err)
}

func TestOpenInterface_ConcurrentClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(0)).DoAndReturn(
		func(context.Context, uint8) (usb.BackendInterface, error) {
			time.Sleep(10 * time.Millisecond)
			return bintf, nil
		},
	).Times(1)
	bintf.EXPECT().Release().Return(nil).AnyTimes()

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := dev.OpenInterface(context.Background(), 0)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, usb.ErrClaimFailed)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, failed)
}

func TestDeviceClose_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)

	bdev.EXPECT().Close().Return(nil).Times(1)
	require.NoError(t, dev.Close())
	require.NoError(t, dev.Close())
}

func TestDeviceClose_ReleasesClaimedInterfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(0)).Return(bintf, nil)
	bintf.EXPECT().Release().Return(nil).Times(1)
	bdev.EXPECT().Close().Return(nil).Times(1)

	intf, err := dev.OpenInterface(context.Background(), 0)
	require.NoError(t, err)

	require.NoError(t, dev.Close())

	// Already released by Close; this must be a no-op.
	require.NoError(t, intf.Release())
}

func TestDevice_OperationsAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)

	bdev.EXPECT().Close().Return(nil)
	require.NoError(t, dev.Close())

	_, err := dev.OpenInterface(context.Background(), 0)
	assert.ErrorIs(t, err, usb.ErrClosed)

	assert.ErrorIs(t, dev.Reset(context.Background()), usb.ErrClosed)
}

func TestDeviceReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	bdev.EXPECT().Reset(gomock.Any()).Return(nil)
	require.NoError(t, dev.Reset(context.Background()))
}

func TestInterfaceRelease_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev, bdev := openTestDevice(t, ctrl)
	defer closeQuietly(t, dev, bdev)

	bintf := mocks.NewMockBackendInterface(ctrl)
	bdev.EXPECT().Claim(gomock.Any(), uint8(0)).Return(bintf, nil)
	bintf.EXPECT().Release().Return(nil).Times(1)

	intf, err := dev.OpenInterface(context.Background(), 0)
	require.NoError(t, err)

	require.NoError(t, intf.Release())
	require.NoError(t, intf.Release())
	require.NoError(t, intf.Release())
}
