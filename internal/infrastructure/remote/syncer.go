package remote

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// Sync categories. Each maps to one local store serialized as JSON.
const (
	CategoryHistory  = "history"
	CategoryMemory   = "memory"
	CategoryCommands = "commands"
)

// CommandStore is the read/write view of the custom-commands file the sync
// layer needs. The chat pipeline itself only ever reads commands.
type CommandStore interface {
	Commands(ctx context.Context) ([]domain.CustomCommand, error)
	Replace([]domain.CustomCommand) error
}

// Report summarizes one sync pass.
type Report struct {
	Pulled  []string
	Pushed  []string
	Skipped string
}

// Syncer reconciles local stores with the sync backend. Conflict resolution
// is remote-wins-if-non-empty: a remote category with content replaces the
// local copy, an empty remote gets the local copy pushed up.
//
// Three guards bound how often it runs: a cooldown since the last pass, an
// in-flight flag so overlapping triggers collapse into one pass, and a dirty
// flag fed by store-change events. None of them lock the stores; the stores
// guard themselves.
type Syncer struct {
	Client      ports.SyncClient
	History     ports.MessageStore
	Memory      ports.MemoryStore
	Commands    CommandStore
	Logger      ports.Logger
	MinInterval time.Duration
	Now         func() time.Time

	mu       sync.Mutex
	lastPass time.Time
	inFlight bool
	dirty    bool
}

// NewSyncer wires a syncer with the default cooldown.
func NewSyncer(client ports.SyncClient, history ports.MessageStore, memory ports.MemoryStore, logger ports.Logger, minInterval time.Duration) *Syncer {
	if minInterval <= 0 {
		minInterval = domain.DefaultSyncCooldown
	}
	return &Syncer{
		Client:      client,
		History:     history,
		Memory:      memory,
		Logger:      logger,
		MinInterval: minInterval,
		Now:         time.Now,
		dirty:       true,
	}
}

// MarkDirty records that a local store changed since the last pass.
func (s *Syncer) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Sync runs one reconciliation pass. force bypasses the cooldown but not the
// in-flight guard.
func (s *Syncer) Sync(ctx context.Context, force bool) (Report, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Report{Skipped: "sync already in progress"}, nil
	}
	if !force && !s.lastPass.IsZero() && s.Now().Sub(s.lastPass) < s.MinInterval {
		s.mu.Unlock()
		return Report{Skipped: "cooldown"}, nil
	}
	if !force && !s.dirty {
		s.mu.Unlock()
		return Report{Skipped: "no local changes"}, nil
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.dirty = false
		s.lastPass = s.Now()
		s.mu.Unlock()
	}()

	var report Report
	if err := s.syncHistory(ctx, &report); err != nil {
		return report, err
	}
	if err := s.syncMemory(ctx, &report); err != nil {
		return report, err
	}
	if err := s.syncCommands(ctx, &report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Syncer) syncHistory(ctx context.Context, report *Report) error {
	remote, err := s.Client.Fetch(ctx, CategoryHistory)
	if err != nil {
		return err
	}
	var remoteMsgs []domain.ChatMessage
	if len(remote) > 0 {
		if err := json.Unmarshal(remote, &remoteMsgs); err != nil {
			s.Logger.Warn("ignoring malformed remote history", map[string]interface{}{"error": err.Error()})
		}
	}
	if len(remoteMsgs) > 0 {
		if err := s.History.Replace(remoteMsgs); err != nil {
			return err
		}
		report.Pulled = append(report.Pulled, CategoryHistory)
		return nil
	}

	local, err := s.History.Messages()
	if err != nil {
		return err
	}
	if len(local) == 0 {
		return nil
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return err
	}
	if err := s.Client.Push(ctx, CategoryHistory, payload); err != nil {
		return err
	}
	report.Pushed = append(report.Pushed, CategoryHistory)
	return nil
}

func (s *Syncer) syncMemory(ctx context.Context, report *Report) error {
	remote, err := s.Client.Fetch(ctx, CategoryMemory)
	if err != nil {
		return err
	}
	var remoteEntries []domain.MemoryEntry
	if len(remote) > 0 {
		if err := json.Unmarshal(remote, &remoteEntries); err != nil {
			s.Logger.Warn("ignoring malformed remote memory", map[string]interface{}{"error": err.Error()})
		}
	}
	if len(remoteEntries) > 0 {
		if err := s.Memory.Replace(remoteEntries); err != nil {
			return err
		}
		report.Pulled = append(report.Pulled, CategoryMemory)
		return nil
	}

	local, err := s.Memory.Entries()
	if err != nil {
		return err
	}
	if len(local) == 0 {
		return nil
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return err
	}
	if err := s.Client.Push(ctx, CategoryMemory, payload); err != nil {
		return err
	}
	report.Pushed = append(report.Pushed, CategoryMemory)
	return nil
}

func (s *Syncer) syncCommands(ctx context.Context, report *Report) error {
	if s.Commands == nil {
		return nil
	}
	remote, err := s.Client.Fetch(ctx, CategoryCommands)
	if err != nil {
		return err
	}
	var remoteCmds []domain.CustomCommand
	if len(remote) > 0 {
		if err := json.Unmarshal(remote, &remoteCmds); err != nil {
			s.Logger.Warn("ignoring malformed remote commands", map[string]interface{}{"error": err.Error()})
		}
	}
	if len(remoteCmds) > 0 {
		if err := s.Commands.Replace(remoteCmds); err != nil {
			return err
		}
		report.Pulled = append(report.Pulled, CategoryCommands)
		return nil
	}

	local, err := s.Commands.Commands(ctx)
	if err != nil {
		return err
	}
	if len(local) == 0 {
		return nil
	}
	payload, err := json.Marshal(local)
	if err != nil {
		return err
	}
	if err := s.Client.Push(ctx, CategoryCommands, payload); err != nil {
		return err
	}
	report.Pushed = append(report.Pushed, CategoryCommands)
	return nil
}
