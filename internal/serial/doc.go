// Package serial saves and restores a whole arena as a msgpack stream.
//
// A file is a sequence of msgpack values:
//
//	header   [magic, format, schema, origin, #strings, #objects, #collections]
//	string   one per table entry, in id order (id 0 "" is implicit)
//	object   [kind, name, [file line col endLine endCol], parent, text, [slots...]]
//	coll     [group, [items...]]
//	trailer  [[roots...], end magic]
//
// Ids inside the file are dense and 1-based, assigned in breadth-first order
// from the roots; only reachable objects are written. Restore decodes into a
// staging store and installs it only when the whole graph validates.
package serial
