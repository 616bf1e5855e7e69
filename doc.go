// Package bitmap provides a pixel-format-agnostic view of raw pixel
// memory.
//
// Memory is addressed through an [Info], which combines a width, a
// height, a row stride in bytes and a [format.Format]. Three kinds of
// value share that addressing:
//
//   - [Bitmap] owns its memory.
//   - [View] borrows memory owned by something else, either writable
//     or read-only. [Typed] is a View with a compile-time pixel type.
//   - [Pointer] is a raw pointer to memory, usually owned outside of
//     Go, for handing to and receiving from foreign code.
//
// Moving between them is always explicit. A Bitmap hands out Views
// without copying, a View is turned into a Pointer only for the
// duration of a pin, and a Pointer becomes a Bitmap only by copying.
// Memory owned by foreign code is lent to the package through the
// [Lender] interface, usually by way of a [Foreign].
//
// Nothing in this package is safe for concurrent mutation. Views over
// distinct memory may be used from different goroutines freely.
package bitmap
