// Package vpi is the handle-based introspection surface over an arena.
//
// It follows the shape of a C handle ABI: callers hold opaque *Handle
// values, navigate with Relate/Iterate/Scan and read values with
// Property/StringProperty. Misuse never faults. A nil handle stands for
// "null", unknown properties return schema.Undefined or "", and stale
// handles (erased object, purged or restored arena) read as null.
//
// The Check/Lookup* variants perform the same operations but report why a
// request failed (model.ErrStaleHandle, model.ErrLookup).
package vpi
