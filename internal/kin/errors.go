package kin

import (
	"errors"
	"fmt"
)

// Domain errors for mechanism construction and validation.
var (
	// ErrUnknownRod indicates a rod handle outside the arena.
	ErrUnknownRod = errors.New("kin: unknown rod")

	// ErrUnknownJoint indicates a joint handle outside the arena.
	ErrUnknownJoint = errors.New("kin: unknown joint")

	// ErrUnknownKind indicates a joint kind name that is not recognized.
	ErrUnknownKind = errors.New("kin: unknown joint kind")

	// ErrKindMismatch indicates an attachment the joint kind cannot carry.
	ErrKindMismatch = errors.New("kin: attachment not supported by joint kind")

	// ErrAttachmentMismatch indicates a rod and a joint disagree about an attachment.
	ErrAttachmentMismatch = errors.New("kin: rod and joint attachment lists out of sync")

	// ErrSlideRodTaken indicates a second slide rod on a sliding joint.
	ErrSlideRodTaken = errors.New("kin: joint already slides along a rod")

	// ErrInvalidGeometry indicates a NaN or infinite position.
	ErrInvalidGeometry = errors.New("kin: invalid geometry (NaN or Inf detected)")
)

// ValidationError wraps an error with the element it was found on.
type ValidationError struct {
	Element Element
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Element, e.Wrapped)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
