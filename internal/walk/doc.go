// Package walk is the traversal framework passes are built on.
//
// A pass describes itself as a Listener, two tables of hooks indexed by
// kind, and runs a Walker over an arena:
//
//	var l walk.Listener
//	l.OnLeave(checkNet, schema.KindNet)
//	w := walk.New(a, &l)
//	w.WalkRoots(ctx, "lint")
//
// Hooks can inspect the incoming Edge of the current object to replace it in
// its parent, and can Abort the traversal.
package walk
