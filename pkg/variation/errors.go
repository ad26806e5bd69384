package variation

import (
	"errors"
)

// Protocol violations detected while assembling a catalog. All of them
// abort emission: Build returns the error and no catalog is published.
var (
	// ErrUnbalancedFolder reports an EndFolder without a matching
	// BeginFolder, or folders still open at Build.
	ErrUnbalancedFolder = errors.New("unbalanced folder nesting")

	// ErrBuilderFinalized reports builder calls after Build.
	ErrBuilderFinalized = errors.New("builder already finalized")

	// ErrDuplicateID reports two variations sharing an identifier.
	ErrDuplicateID = errors.New("duplicate variation identifier")
)
