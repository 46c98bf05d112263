// Package adjust rewrites a graph in place: it folds constant expressions,
// resizes literals to the width of the object they are assigned to and
// propagates reduced expressions up to their parents.
//
// Every rewrite allocates a fresh constant, splices it into the link the
// walker arrived through and erases the subtree it replaces. Running the
// pass a second time changes nothing.
package adjust
