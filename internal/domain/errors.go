package domain

import "errors"

// Named error taxonomy surfaced by the repositories and services. Handlers
// map these onto HTTP statuses with errors.Is.
var (
	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrJobNotFound indicates the requested job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrArtifactNotFound indicates the requested artifact does not exist.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrIllegalTransition indicates a status change the transition table
	// does not allow, including self-loops and moves out of terminal states.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrInvalidDecision indicates a review decision other than
	// approved/rejected.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")

	// ErrRenderInFlight indicates a render is already running for the job.
	ErrRenderInFlight = errors.New("render already in flight for job")
)
