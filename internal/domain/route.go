package domain

// RouteKind is the coarse classification of an incoming user utterance.
type RouteKind string

const (
	// RouteMemory answers the turn locally from the memory store.
	RouteMemory RouteKind = "memory"
	// RouteService delegates the turn to an external service integration.
	RouteService RouteKind = "service"
	// RouteChat dispatches the turn to the configured LLM provider.
	RouteChat RouteKind = "chat"
)

// Route is the outcome of intent classification. Service is set only when
// Kind == RouteService.
type Route struct {
	Kind    RouteKind
	Service ServiceKind
}
