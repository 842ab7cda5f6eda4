package llm

import "context"

// DeckOptions parameterizes the shape of a generated deck.
type DeckOptions struct {
	SlideCount  int
	BulletCount int
}

// Client generates raw slide deck text for a topic. The output is a single
// text block with a blank line between slides and the title on the first
// line of each slide; callers must tolerate responses that deviate from
// that shape.
type Client interface {
	GenerateDeck(ctx context.Context, topic string) (string, error)
}
