package services

import (
	"errors"
	"fmt"
)

// The five outcome kinds every operation can return. Handlers branch on
// these with errors.Is; none of them is a transient failure worth retrying.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
)

// Named business outcomes, each wrapping its kind so callers can branch
// at either granularity.
var (
	ErrNeedsOnboarding    = fmt.Errorf("%w: no profile for identity", ErrNotFound)
	ErrProfileClaimed     = fmt.Errorf("%w: profile already claimed", ErrConflict)
	ErrHackathonEnded     = fmt.Errorf("%w: hackathon has ended", ErrInvalidState)
	ErrRegistrationClosed = fmt.Errorf("%w: registration deadline passed", ErrInvalidState)
	ErrHackathonFull      = fmt.Errorf("%w: hackathon is full", ErrConflict)
	ErrSelfHonor          = fmt.Errorf("%w: cannot honor yourself", ErrForbidden)
	ErrNotTeamMember      = fmt.Errorf("%w: not a team member of this project", ErrForbidden)
	ErrAlreadyHonored     = fmt.Errorf("%w: already honored a teammate on this project", ErrConflict)
	ErrHonorWindowClosed  = fmt.Errorf("%w: honor window closed", ErrInvalidState)
	ErrBountyNotOpen      = fmt.Errorf("%w: bounty is not open", ErrInvalidState)
	ErrDeadlinePassed     = fmt.Errorf("%w: bounty deadline passed", ErrInvalidState)
	ErrAlreadySubmitted   = fmt.Errorf("%w: already submitted to this bounty", ErrConflict)
	ErrNotRanked          = fmt.Errorf("%w: profile not ranked", ErrNotFound)
)
