// Package doctor runs environment diagnostics: configuration, provider
// credentials, local stores, and integrations.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// Status of one diagnostic check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one diagnostic result.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Service runs the diagnostics.
type Service struct {
	Config  ports.ConfigProvider
	History ports.MessageStore
	Memory  ports.MemoryStore
}

// Run executes all checks and returns them in display order.
func (s *Service) Run(ctx context.Context) []Check {
	var checks []Check

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		checks = append(checks, Check{Name: "config", Status: StatusFail, Detail: err.Error()})
		return checks
	}
	checks = append(checks, Check{Name: "config", Status: StatusOK, Detail: "loaded"})

	if len(cfg.Providers) == 0 {
		checks = append(checks, Check{Name: "providers", Status: StatusFail, Detail: "no providers configured"})
	}
	for _, p := range cfg.Providers {
		checks = append(checks, s.checkProvider(p))
	}

	if _, ok := cfg.ActiveProvider(""); !ok {
		checks = append(checks, Check{
			Name:   "default provider",
			Status: StatusFail,
			Detail: fmt.Sprintf("default %q matches no configured provider", cfg.Preferences.DefaultProvider),
		})
	}

	checks = append(checks, s.checkStore("history store", func() (int, error) {
		msgs, err := s.History.Messages()
		return len(msgs), err
	}))
	checks = append(checks, s.checkStore("memory store", func() (int, error) {
		entries, err := s.Memory.Entries()
		return len(entries), err
	}))

	if cfg.Sync.Endpoint == "" {
		checks = append(checks, Check{Name: "sync", Status: StatusOK, Detail: "disabled"})
	} else if cfg.Preferences.UserID == "" {
		checks = append(checks, Check{Name: "sync", Status: StatusWarn, Detail: "endpoint set but preferences.user_id is empty"})
	} else {
		checks = append(checks, Check{Name: "sync", Status: StatusOK, Detail: cfg.Sync.Endpoint})
	}

	connected := cfg.Integrations.Connected()
	if len(connected) == 0 {
		checks = append(checks, Check{Name: "integrations", Status: StatusOK, Detail: "none connected"})
	}
	for kind, endpoint := range connected {
		checks = append(checks, Check{Name: fmt.Sprintf("integration %s", kind), Status: StatusOK, Detail: endpoint})
	}

	return checks
}

func (s *Service) checkProvider(p domain.ProviderConfig) Check {
	name := fmt.Sprintf("provider %s", p.Name)
	if p.ModelID == "" {
		return Check{Name: name, Status: StatusFail, Detail: "model_id is empty"}
	}
	envVar := p.AuthEnvVar
	if envVar == "" {
		return Check{Name: name, Status: StatusWarn, Detail: "no auth_env_var configured"}
	}
	if os.Getenv(envVar) == "" {
		return Check{Name: name, Status: StatusWarn, Detail: fmt.Sprintf("%s is not set", envVar)}
	}
	return Check{Name: name, Status: StatusOK, Detail: fmt.Sprintf("%s (%s)", p.ModelID, envVar)}
}

func (s *Service) checkStore(name string, count func() (int, error)) Check {
	n, err := count()
	if err != nil {
		return Check{Name: name, Status: StatusWarn, Detail: err.Error()}
	}
	return Check{Name: name, Status: StatusOK, Detail: fmt.Sprintf("%d records", n)}
}
