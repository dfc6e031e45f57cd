// Package letterbox provides the public API for embedding go-letterbox.
// An instance keeps content authored against a fixed virtual resolution
// centered in a resizable window, scaled uniformly, with mask bars covering
// the unused margins.
//
// # Basic Usage
//
//	lb, err := letterbox.New("/path/to/letterbox.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer lb.Stop()
//
//	lb.ContentRoot().Attach(myNode)
//	if err := lb.Start(); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Sources
//
//   - Disk file: use [New] to load from a filesystem path
//   - Embedded FS: use [NewFromFS] to load from an [io/fs.FS]
//   - io.Reader: use [NewFromReader] for generated configurations
//
// Every constructor validates the configuration and fails with
// [ErrInvalidConfiguration] when the virtual resolution is unusable.
//
// # Geometry
//
// [Letterbox.Result] returns the last applied [aspect.Result]. In headless
// mode there is no window, and callers report surface sizes themselves
// through [Letterbox.SurfaceResized].
//
// # Error Handling
//
// Runtime errors are reported through [ErrorHandler]. Handlers are called
// asynchronously and panics inside them are recovered.
package letterbox
