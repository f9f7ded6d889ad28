package models

// KnowledgeEntry is one row of the HR knowledge base.
//
// ID is the row's ordinal position in the source file, assigned at load
// time. Question is the canonical phrasing used only to compute the
// entry's embedding and is never shown to users. Profile is the single
// employment category authorized to receive Answer.
type KnowledgeEntry struct {
	ID       int
	Question string
	Profile  string
	Domain   string
	Answer   string
}
