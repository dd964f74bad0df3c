// Package inspect dispatches container blobs to the layout adapter
// matching their type name and packages the outcome as a count plus a
// stepping iterator.
//
// Classification is purely textual: the raw type name is matched, in a
// fixed order, against wildcard patterns for the supported container
// kinds. Only after a match does any inspected memory get read, and
// every read is validated, so an arbitrary blob with an arbitrary name
// can never fault the caller.
//
// The Inspector is configured once with the address space, an address
// plausibility probe and the layout constants; individual Inspect calls
// are then cheap and allocation-light, suitable for crash handlers.
package inspect
