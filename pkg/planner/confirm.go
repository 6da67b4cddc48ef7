package planner

// Confirmer asks the user a yes/no question before a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Confirmation prompts used by destructive operations.
const (
	PromptEditSlot   = "Delete this slot? You can add a new one with updated details."
	PromptDeleteNote = "Are you sure you want to delete this note?"
)

func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}
