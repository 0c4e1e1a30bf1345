package doctor

import (
	"context"
	"testing"

	"github.com/ariahq/aria/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubMessageStore struct{ msgs []domain.ChatMessage }

func (s *stubMessageStore) Append(domain.ChatMessage) error         { return nil }
func (s *stubMessageStore) Messages() ([]domain.ChatMessage, error) { return s.msgs, nil }
func (s *stubMessageStore) Replace([]domain.ChatMessage) error      { return nil }
func (s *stubMessageStore) Clear() error                            { return nil }

type stubMemoryStore struct{ entries []domain.MemoryEntry }

func (s *stubMemoryStore) Insert(domain.MemoryEntry) error        { return nil }
func (s *stubMemoryStore) Entries() ([]domain.MemoryEntry, error) { return s.entries, nil }
func (s *stubMemoryStore) Replace([]domain.MemoryEntry) error     { return nil }
func (s *stubMemoryStore) Delete(string) error                    { return nil }
func (s *stubMemoryStore) Truncate(int) error                     { return nil }
func (s *stubMemoryStore) Clear() error                           { return nil }

func findCheck(checks []Check, name string) (Check, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func TestRunReportsMissingAPIKey(t *testing.T) {
	t.Setenv("DOCTOR_TEST_KEY", "")
	svc := &Service{
		Config: stubConfig{cfg: domain.Config{
			Preferences: domain.Preferences{DefaultProvider: "groq"},
			Providers: []domain.ProviderConfig{
				{Name: "groq", Provider: domain.ProviderGroq, ModelID: "llama-3.1-8b-instant", AuthEnvVar: "DOCTOR_TEST_KEY"},
			},
		}},
		History: &stubMessageStore{},
		Memory:  &stubMemoryStore{},
	}

	checks := svc.Run(context.Background())
	check, ok := findCheck(checks, "provider groq")
	if !ok {
		t.Fatalf("no provider check in %+v", checks)
	}
	if check.Status != StatusWarn {
		t.Errorf("missing key should warn, got %+v", check)
	}

	t.Setenv("DOCTOR_TEST_KEY", "secret")
	checks = svc.Run(context.Background())
	check, _ = findCheck(checks, "provider groq")
	if check.Status != StatusOK {
		t.Errorf("present key should pass, got %+v", check)
	}
}

func TestRunReportsConfigFailure(t *testing.T) {
	svc := &Service{
		Config:  stubConfig{err: context.DeadlineExceeded},
		History: &stubMessageStore{},
		Memory:  &stubMemoryStore{},
	}
	checks := svc.Run(context.Background())
	if len(checks) != 1 || checks[0].Status != StatusFail {
		t.Errorf("config failure should short-circuit: %+v", checks)
	}
}

func TestRunFlagsDanglingDefaultProvider(t *testing.T) {
	svc := &Service{
		Config: stubConfig{cfg: domain.Config{
			Preferences: domain.Preferences{DefaultProvider: "missing"},
			Providers: []domain.ProviderConfig{
				{Name: "gemini", Provider: domain.ProviderGemini, ModelID: "gemini-1.5-flash", AuthEnvVar: "GEMINI_API_KEY"},
			},
		}},
		History: &stubMessageStore{},
		Memory:  &stubMemoryStore{},
	}
	checks := svc.Run(context.Background())
	if check, ok := findCheck(checks, "default provider"); !ok || check.Status != StatusFail {
		t.Errorf("dangling default provider should fail: %+v", checks)
	}
}
