package domain

// TurnRequest captures a single user utterance entering the chat pipeline.
type TurnRequest struct {
	Text             string
	ProviderOverride string
}

// TurnResult is the canonical outcome of one chat turn propagated back to
// the CLI. Failed marks replies that are error bubbles rather than real
// provider/memory/service output; the detailed cause goes to the logger.
type TurnResult struct {
	Reply    string
	Route    RouteKind
	Provider string
	Failed   bool
}
