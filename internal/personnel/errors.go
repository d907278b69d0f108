package personnel

import "errors"

// Programmer-contract violations. These indicate host bugs and should
// stop turn processing for the civilization that hit them.
var (
	ErrNilAgent = errors.New("personnel: nil agent")
	ErrNilOwner = errors.New("personnel: nil owner")
	ErrNilGame  = errors.New("personnel: nil game")

	// ErrAlreadyInitialized is returned on re-entrant profile database
	// initialization.
	ErrAlreadyInitialized = errors.New("personnel: profile database already initialized")

	// ErrNotPlanning is returned when Begin is called on a mission or
	// assignment that has already left planning.
	ErrNotPlanning = errors.New("personnel: not in planning")
)

// Policy rejections surfaced through the error return of mutating
// calls. Callers are expected to consult the Can* predicates first and
// treat these as no-ops rather than failures.
var (
	ErrWrongOwner           = errors.New("personnel: agent owned by another civilization")
	ErrAssignmentNotAllowed = errors.New("personnel: assignment change not allowed")
	ErrNotAssigned          = errors.New("personnel: agent is not assigned")
	ErrNoAgentsAssigned     = errors.New("personnel: no agents assigned")
	ErrCannotBegin          = errors.New("personnel: mission cannot begin")
)
