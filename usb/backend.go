package usb

//go:generate mockgen -source=backend.go -destination=mocks/backend_mock.go -package=mocks

import "context"

// Backend is the capability contract both transports satisfy: the native
// direct-hardware transport and the browser-mediated one. Callers never depend
// on which variant they hold.
//
// All methods honor ctx cancellation as "stop waiting": the backend releases
// whatever it reserved for the pending operation, but cannot always abort the
// operation host-side, in which case the eventual result is discarded.
type Backend interface {
	// Enumerate lists devices matching at least one of the filters. The
	// browser transport applies the filters inside its permission-gated
	// device-selection call; the native transport applies them while
	// walking descriptors. Fails with ErrEnumerationFailed.
	Enumerate(ctx context.Context, filters []DeviceFilter) ([]DeviceInfo, error)

	// Open opens a device previously returned by Enumerate on this same
	// backend. Fails with ErrOpenFailed.
	Open(ctx context.Context, info DeviceInfo) (BackendDevice, error)
}

// BackendDevice is one backend's open-device resource.
type BackendDevice interface {
	// Claim claims an interface by number. Fails with ErrClaimFailed if the
	// number does not exist on the device or is held elsewhere.
	Claim(ctx context.Context, number uint8) (BackendInterface, error)

	// Reset performs a USB port reset of the device.
	Reset(ctx context.Context) error

	// Strings returns the manufacturer, product and serial string
	// descriptors, empty when unavailable.
	Strings() (manufacturer, product, serial string)

	// Close releases the device resource. Safe to call more than once.
	Close() error
}

// BackendInterface is a claimed interface on an open backend device.
//
// In transfers request at most the given length and may return fewer bytes.
// Out transfers report the bytes actually written; a short write is a success
// result, not an error. All transfer failures map to ErrTransferFailed.
type BackendInterface interface {
	// Release releases the claim. Idempotent; releasing an already-released
	// interface is a no-op.
	Release() error

	ControlIn(ctx context.Context, req ControlIn) ([]byte, error)
	ControlOut(ctx context.Context, req ControlOut) (int, error)

	BulkIn(ctx context.Context, endpoint uint8, length int) ([]byte, error)
	BulkOut(ctx context.Context, endpoint uint8, data []byte) (int, error)

	InterruptIn(ctx context.Context, endpoint uint8, length int) ([]byte, error)
	InterruptOut(ctx context.Context, endpoint uint8, data []byte) (int, error)
}
