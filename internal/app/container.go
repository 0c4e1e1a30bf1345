// Package app assembles the object graph. Everything is wired here through
// constructor injection; no package-level singletons.
package app

import (
	"context"
	"time"

	"github.com/ariahq/aria/internal/application/chat"
	"github.com/ariahq/aria/internal/application/doctor"
	"github.com/ariahq/aria/internal/composer"
	"github.com/ariahq/aria/internal/domain"
	conversation "github.com/ariahq/aria/internal/history"
	commandsource "github.com/ariahq/aria/internal/infrastructure/commands"
	configloader "github.com/ariahq/aria/internal/infrastructure/config"
	historystore "github.com/ariahq/aria/internal/infrastructure/history"
	"github.com/ariahq/aria/internal/infrastructure/integrations"
	memorystore "github.com/ariahq/aria/internal/infrastructure/memory"
	"github.com/ariahq/aria/internal/infrastructure/provider"
	"github.com/ariahq/aria/internal/infrastructure/remote"
	"github.com/ariahq/aria/internal/memory"
	"github.com/ariahq/aria/internal/pkg/events"
	"github.com/ariahq/aria/internal/pkg/logger"
	"github.com/ariahq/aria/internal/ports"
	"github.com/ariahq/aria/internal/router"
)

// Container holds the wired services consumed by the CLI layer.
type Container struct {
	Settings domain.Config
	Loader   *configloader.FileLoader
	Logger   ports.Logger
	Events   *events.Emitter
	History  *conversation.Manager
	Memory   *memory.Engine
	Commands *commandsource.FileSource
	Chat     *chat.Service
	Doctor   *doctor.Service
	Syncer   *remote.Syncer
}

// Build loads the configuration and wires the full object graph.
func Build(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)
	loader := configloader.NewFileLoader()
	cfg, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	emitter := events.New()
	historyManager := conversation.NewManager(historystore.NewSQLiteStore(), cfg.History, emitter)
	memoryEngine := memory.NewEngine(memorystore.NewSQLiteStore(), cfg.Memory, emitter)
	commandSource := commandsource.NewFileSource()

	registry := integrations.NewRegistry(cfg.Integrations, nil)
	chatService := &chat.Service{
		Config:    loader,
		Providers: provider.NewFactory(),
		History:   historyManager,
		Memory:    memoryEngine,
		Commands:  commandSource,
		Composer:  composer.New(),
		Router:    router.New(cfg.Integrations),
		Services:  registry.Handler,
		Logger:    log,
		SaveTurns: cfg.Memory.SaveTurns,
	}

	doctorService := &doctor.Service{
		Config:  loader,
		History: historyManager.Store,
		Memory:  memoryEngine.Store,
	}

	container := &Container{
		Settings: cfg,
		Loader:   loader,
		Logger:   log,
		Events:   emitter,
		History:  historyManager,
		Memory:   memoryEngine,
		Commands: commandSource,
		Chat:     chatService,
		Doctor:   doctorService,
	}

	if cfg.Sync.Endpoint != "" && cfg.Preferences.UserID != "" {
		client := remote.NewClient(cfg.Sync, cfg.Preferences.UserID, nil)
		container.Syncer = remote.NewSyncer(client, historyManager.Store, memoryEngine.Store, log,
			time.Duration(cfg.Sync.MinIntervalSeconds)*time.Second)
		container.Syncer.Commands = commandSource
		// store changes mark the next sync pass as worthwhile
		emitter.Subscribe(events.TopicHistoryChanged, func(string) { container.Syncer.MarkDirty() })
		emitter.Subscribe(events.TopicMemoryChanged, func(string) { container.Syncer.MarkDirty() })
	}

	return container, nil
}

// SyncEnabled reports whether a sync backend is configured.
func (c *Container) SyncEnabled() bool {
	return c.Syncer != nil
}

// SyncAfterTurn runs a cooldown-guarded sync pass after a chat turn. Errors
// are logged, never surfaced to the conversation.
func (c *Container) SyncAfterTurn(ctx context.Context) {
	if c.Syncer == nil {
		return
	}
	if _, err := c.Syncer.Sync(ctx, false); err != nil {
		c.Logger.Warn("background sync failed", map[string]interface{}{"error": err.Error()})
	}
}
