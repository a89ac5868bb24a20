package translate

import "context"

// Translator is the opaque text-to-text collaborator. Implementations must
// bound their own I/O; callers treat failures as "no translation available".
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
