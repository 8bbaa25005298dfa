// Package kin holds the data model of a planar linkage: rigid rods and the
// joints that connect them.
//
// A [Mechanism] is an arena. Rods and joints live in slices and refer to
// each other through stable handles ([RodID], [JointID]) instead of
// pointers, so the cyclic rod/joint graph never aliases mutable state:
//
//   - a rod lists its joints as [Attachment] values (joint handle + k)
//   - a joint lists its rods as [RodPos] values (rod handle + k)
//
// Joints are a closed set of kinds ([Slider], [Slidep], [Pivot], [Fixation])
// sharing one [Joint] struct; the kind decides which of the rod lists are
// meaningful.
//
// # Rigid Motion
//
// The Pull* and Rotate methods on [Rod] move a rod as a rigid body. Each one
// exactly satisfies a single positional request and preserves the rod
// length, which is what the relaxation loop in package solver relies on.
//
// # Building
//
// The builder methods ([Mechanism.AddRod], [Mechanism.AttachFixed], ...)
// keep both sides of every attachment in sync. [Mechanism.Validate] checks
// that a mechanism assembled by other means is well formed.
package kin
