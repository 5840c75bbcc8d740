// Package flashcard parses Markdown flashcard decks into cards and builds the
// study-ready outputs (JSON and Quizlet TSV) from them.
//
// # Deck Format
//
// A card starts at a level 2-6 heading of the form "Flashcard <n>: <title>".
// The question is a bullet of the form "- **Question**: <text>" and the answer
// is everything after a "- **Answer**:" bullet, up to the next card heading or
// a "---" separator line:
//
//	## Flashcard 1: Python Basics
//	- **Question**: What is Python?
//	- **Answer**:
//	A programming language.
//
// Cards without both a question and a non-empty answer are dropped.
//
// # Outputs
//
//	out, err := flashcard.BuildOutputs([]flashcard.Source{{Name: "notes.md", Text: text}})
//	// out.JSON: {"cards": [{"id": "...", "q": "What is Python?", ...}]}
//	// out.TSV:  "What is Python?\tA programming language.\n"
package flashcard
