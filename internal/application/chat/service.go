// Package chat orchestrates one conversational turn: route the utterance,
// answer memory queries locally, hand service requests to integrations, and
// dispatch everything else to the configured LLM provider.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariahq/aria/internal/composer"
	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/history"
	"github.com/ariahq/aria/internal/memory"
	"github.com/ariahq/aria/internal/ports"
)

// ErrEmptyInput rejects turns with no content.
var ErrEmptyInput = errors.New("input must not be empty")

// ServiceResolver looks up the handler for a connected integration.
type ServiceResolver func(domain.ServiceKind) (ports.ServiceHandler, bool)

// Service runs chat turns. All collaborators are injected; none are global.
type Service struct {
	Config    ports.ConfigProvider
	Providers ports.ProviderFactory
	History   *history.Manager
	Memory    *memory.Engine
	Commands  ports.CommandSource
	Composer  *composer.Composer
	Router    ports.RouteClassifier
	Services  ServiceResolver
	Logger    ports.Logger
	SaveTurns bool
	Now       func() time.Time
}

// Turn processes one user utterance end to end and returns the reply. The
// user message and the reply are both appended to history, in that order,
// with strictly increasing timestamps. Provider and integration failures do
// not error out the turn; they come back as a reply with Failed set, so the
// conversation surface can render them like any other assistant message.
func (s *Service) Turn(ctx context.Context, req domain.TurnRequest) (domain.TurnResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.TurnResult{}, ErrEmptyInput
	}
	now := s.now()

	route := s.Router.Classify(text)
	userMsg := domain.ChatMessage{Role: domain.RoleUser, Content: text, Timestamp: now.UnixMilli()}

	switch route.Kind {
	case domain.RouteMemory:
		reply := s.Memory.Recall(text)
		s.appendTurn(userMsg, reply)
		return domain.TurnResult{Reply: reply, Route: route.Kind}, nil

	case domain.RouteService:
		return s.serviceTurn(ctx, route, userMsg)

	default:
		return s.chatTurn(ctx, req, route, userMsg)
	}
}

func (s *Service) serviceTurn(ctx context.Context, route domain.Route, userMsg domain.ChatMessage) (domain.TurnResult, error) {
	handler, ok := s.Services(route.Service)
	if !ok {
		return s.failedTurn(route, userMsg, fmt.Errorf("%s is not connected", route.Service)), nil
	}
	reply, err := handler.Handle(ctx, userMsg.Content)
	if err != nil {
		s.Logger.Error("service hand-off failed", err, map[string]interface{}{"service": string(route.Service)})
		return s.failedTurn(route, userMsg, err), nil
	}
	s.appendTurn(userMsg, reply)
	s.saveTurn(userMsg.Content, reply)
	return domain.TurnResult{Reply: reply, Route: route.Kind}, nil
}

func (s *Service) chatTurn(ctx context.Context, req domain.TurnRequest, route domain.Route, userMsg domain.ChatMessage) (domain.TurnResult, error) {
	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return s.failedTurn(route, userMsg, fmt.Errorf("load configuration: %w", err)), nil
	}
	providerCfg, ok := cfg.ActiveProvider(req.ProviderOverride)
	if !ok {
		return s.failedTurn(route, userMsg, fmt.Errorf("no provider named %q is configured", req.ProviderOverride)), nil
	}
	provider, err := s.Providers.ForConfig(providerCfg)
	if err != nil {
		return s.failedTurn(route, userMsg, err), nil
	}

	msgs := append(s.History.Messages(), userMsg)
	instruction := s.activeInstruction(ctx)
	msgs = composer.Inject(msgs, instruction, userMsg.Timestamp)
	msgs = s.History.WindowForDispatch(msgs)

	reply, err := provider.Send(ctx, msgs)
	if err != nil {
		s.Logger.Error("provider dispatch failed", err, map[string]interface{}{
			"provider": provider.Name(),
			"model":    providerCfg.ModelID,
		})
		result := s.failedTurn(route, userMsg, err)
		result.Provider = providerCfg.Name
		return result, nil
	}

	s.appendTurn(userMsg, reply)
	s.saveTurn(userMsg.Content, reply)
	s.Logger.Debug("turn completed", map[string]interface{}{
		"provider": provider.Name(),
		"window":   len(msgs),
	})
	return domain.TurnResult{Reply: reply, Route: route.Kind, Provider: providerCfg.Name}, nil
}

func (s *Service) activeInstruction(ctx context.Context) string {
	cmds, err := s.Commands.Commands(ctx)
	if err != nil {
		s.Logger.Warn("loading custom commands failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return s.Composer.ActiveInstruction(cmds, s.now())
}

// failedTurn records the user message and an error bubble so the failure is
// part of the conversation instead of aborting it.
func (s *Service) failedTurn(route domain.Route, userMsg domain.ChatMessage, cause error) domain.TurnResult {
	reply := fmt.Sprintf("Sorry, something went wrong: %v", cause)
	s.appendTurn(userMsg, reply)
	return domain.TurnResult{Reply: reply, Route: route.Kind, Failed: true}
}

// appendTurn persists the user message then the assistant reply, keeping
// timestamps strictly increasing.
func (s *Service) appendTurn(userMsg domain.ChatMessage, reply string) {
	if err := s.History.Append(userMsg); err != nil {
		s.Logger.Warn("appending user message failed", map[string]interface{}{"error": err.Error()})
	}
	ts := s.now().UnixMilli()
	if ts <= userMsg.Timestamp {
		ts = userMsg.Timestamp + 1
	}
	assistantMsg := domain.ChatMessage{Role: domain.RoleAssistant, Content: reply, Timestamp: ts}
	if err := s.History.Append(assistantMsg); err != nil {
		s.Logger.Warn("appending assistant message failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) saveTurn(userInput, reply string) {
	if !s.SaveTurns {
		return
	}
	if _, err := s.Memory.Save(userInput, reply); err != nil {
		s.Logger.Warn("saving memory entry failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
