package flows

import (
	"context"

	"github.com/rgbim/rgbim-go/session"
)

// RestoreDeps captures restoration dependencies.
type RestoreDeps struct {
	ReadSlot func(ctx context.Context, slot string) ([]byte, error)
	Slots    session.Slots
}

// RestoreResult reports what came back from durable storage. Nil User or
// Tokens means the slot was absent or unreadable; the matching Discarded flag
// distinguishes "never written" from "written but malformed or unreadable".
type RestoreResult struct {
	User   *session.UserRecord
	Tokens *session.TokenRecord

	UserDiscarded   bool
	TokensDiscarded bool

	// UserErr and TokensErr are informational. Restoration never fails:
	// whatever cannot be read is treated as absent.
	UserErr   error
	TokensErr error
}

// RunRestore reads the two slots independently. Malformed or unreadable slot
// data degrades to absent — restoration fails open to "logged out", never to
// a crash, and never clears what is already stored.
func RunRestore(ctx context.Context, deps RestoreDeps) RestoreResult {
	var result RestoreResult

	if data, err := deps.ReadSlot(ctx, deps.Slots.Tokens); err != nil {
		result.TokensDiscarded = true
		result.TokensErr = err
	} else if data != nil {
		tokens, err := session.DecodeTokens(data)
		if err != nil {
			result.TokensDiscarded = true
			result.TokensErr = err
		} else {
			result.Tokens = tokens
		}
	}

	if data, err := deps.ReadSlot(ctx, deps.Slots.User); err != nil {
		result.UserDiscarded = true
		result.UserErr = err
	} else if data != nil {
		user, err := session.DecodeUser(data)
		if err != nil {
			result.UserDiscarded = true
			result.UserErr = err
		} else {
			result.User = user
		}
	}

	return result
}
