// Package decompile renders graph objects back to HDL-like text. It is used
// for cached object text, the Decompile string property, dumps and lint
// messages. Rendering looks only at kinds, fields and children.
package decompile
