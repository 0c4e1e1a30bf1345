// Package router classifies an incoming user utterance as a memory query,
// an external-service request, or a plain chat turn.
package router

import (
	"strings"

	"github.com/ariahq/aria/internal/domain"
)

// memoryPhrases trigger local memory handling. Checked before any service
// keywords, so "remind me what we discussed about email" stays a memory
// query rather than a mail request.
var memoryPhrases = []string{
	"remember",
	"remind me",
	"what did we talk about",
	"what did we discuss",
	"recall",
	"memory",
	"memories",
}

// serviceKeywords map utterance keywords to an integration kind. Order
// matters: the first matching category wins.
var serviceKeywords = []struct {
	kind     domain.ServiceKind
	keywords []string
}{
	{domain.ServiceGmail, []string{"email", "inbox", "mail", "message"}},
	{domain.ServiceCalendar, []string{"schedule", "meeting", "event", "appointment"}},
	{domain.ServiceDrive, []string{"file", "document", "upload", "folder"}},
}

// Classifier is a pure, stateless keyword classifier. Connected lists the
// service kinds whose integrations are configured; a keyword for an
// unconnected service falls through to plain chat.
type Classifier struct {
	Connected map[domain.ServiceKind]bool
}

// New builds a Classifier from the configured integrations.
func New(integrations domain.IntegrationSettings) *Classifier {
	connected := make(map[domain.ServiceKind]bool)
	for kind := range integrations.Connected() {
		connected[kind] = true
	}
	return &Classifier{Connected: connected}
}

// Classify implements ports.RouteClassifier.
func (c *Classifier) Classify(text string) domain.Route {
	lower := strings.ToLower(text)

	for _, phrase := range memoryPhrases {
		if strings.Contains(lower, phrase) {
			return domain.Route{Kind: domain.RouteMemory}
		}
	}

	for _, category := range serviceKeywords {
		if !c.Connected[category.kind] {
			continue
		}
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				return domain.Route{Kind: domain.RouteService, Service: category.kind}
			}
		}
	}

	return domain.Route{Kind: domain.RouteChat}
}
