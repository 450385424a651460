package ports

// ActionMapper decouples dilemma-specific action ids from the
// framework-internal vocabulary.
type ActionMapper interface {
	ToFrameworkAction(dilemmaActionID string) string
	ToDilemmaAction(frameworkActionID string) string
}
