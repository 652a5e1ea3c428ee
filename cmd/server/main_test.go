package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"reflect"
	"syscall"
	"testing"
	"time"

	"gorm.io/gorm"

	"cuisine/internal/config"
	"cuisine/internal/forms"
	"cuisine/internal/server"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

// launch records what run handed to the server and the editor.
type launch struct {
	server      server.Config
	ingredients forms.Limits
	steps       forms.Limits
}

// stubRun swaps every dependency of run for the duration of the test. The
// database hooks fail the test unless the case overrides them.
func stubRun(t *testing.T, cfg config.Config, srv *stubServer) (*launch, chan os.Signal) {
	t.Helper()

	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalFormsets := setFormsetLimits
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig
	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		setFormsetLimits = originalFormsets
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})

	got := &launch{}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be opened")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configured database should not be opened")
		return nil, nil
	}
	setFormsetLimits = func(ingredients, steps forms.Limits) {
		got.ingredients, got.steps = ingredients, steps
	}
	newServerFunc = func(c server.Config) (serverLifecycle, error) {
		got.server = c
		return srv, nil
	}

	signals := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return signals, func() {}
	}
	return got, signals
}

func TestRunWiresConfigurationIntoServer(t *testing.T) {
	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080", RequestTimeout: 7 * time.Second},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "debug"},
		Auth: config.AuthConfig{
			Session: config.SessionConfig{
				Lifetime:     time.Hour,
				CookieName:   "kitchen",
				CookieDomain: "cuisine.test",
				CookieSecure: true,
			},
		},
		Formsets:  config.FormsetConfig{IngredientExtra: 2, IngredientMax: 12, StepExtra: 1, StepMax: 8},
		RateLimit: config.RateLimitConfig{RPS: 2.5, Burst: 4},
		CORS:      config.CORSConfig{Origins: []string{"https://menu.cuisine.test"}},
	}

	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	got, signals := stubRun(t, cfg, serverStub)

	seeded := &gorm.DB{}
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return seeded, nil }

	go func() {
		<-serverStub.startNotify
		signals <- syscall.SIGTERM
	}()

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}

	if got.ingredients != (forms.Limits{Extra: 2, Max: 12}) {
		t.Fatalf("unexpected ingredient limits %+v", got.ingredients)
	}
	if got.steps != (forms.Limits{Extra: 1, Max: 8}) {
		t.Fatalf("unexpected step limits %+v", got.steps)
	}

	want := server.Config{
		Addr:           ":8080",
		RequestTimeout: 7 * time.Second,
		Session: server.SessionConfig{
			Lifetime:     time.Hour,
			CookieName:   "kitchen",
			CookieDomain: "cuisine.test",
			CookieSecure: true,
		},
		RateLimit:   server.RateLimitConfig{RPS: 2.5, Burst: 4},
		CORSOrigins: []string{"https://menu.cuisine.test"},
		Database:    seeded,
	}
	if !reflect.DeepEqual(got.server, want) {
		t.Fatalf("server config = %+v, want %+v", got.server, want)
	}
}

func TestRunUsesConfiguredDatabase(t *testing.T) {
	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{URL: "postgres://cuisine@db/cuisine"},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	serverStub := newStubServer(nil, nil, false)
	got, _ := stubRun(t, cfg, serverStub)

	configured := &gorm.DB{}
	configureDatabase = func(c config.DatabaseConfig) (*gorm.DB, error) {
		if c.URL != cfg.Database.URL {
			t.Fatalf("expected database url %q, got %q", cfg.Database.URL, c.URL)
		}
		return configured, nil
	}

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0 when the server stops cleanly, got %d", code)
	}
	if got.server.Database != configured {
		t.Fatal("expected the configured database to reach the server")
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	serverStub := newStubServer(errors.New("listener failure"), nil, false)
	stubRun(t, cfg, serverStub)
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("server stop should not be called on start error")
	}
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	cfg := config.Config{Database: config.DatabaseConfig{UseMock: true}}

	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	stubRun(t, cfg, serverStub)
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-serverStub.startNotify
		cancel()
	}()

	if code := run(ctx); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !serverStub.stopCalled {
		t.Fatal("expected server stop after cancellation")
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{
			name: "database",
			setup: func(t *testing.T) {
				stubRun(t, config.Config{Database: config.DatabaseConfig{URL: "postgres://example"}}, newStubServer(nil, nil, false))
				configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
					return nil, errors.New("db connection refused")
				}
			},
		},
		{
			name: "log level",
			setup: func(t *testing.T) {
				stubRun(t, config.Config{Logging: config.LoggingConfig{Level: "invalid"}}, newStubServer(nil, nil, false))
				setLogLevelFunc = func(string) error { return errors.New("invalid level") }
			},
		},
		{
			name: "config",
			setup: func(t *testing.T) {
				stubRun(t, config.Config{}, newStubServer(nil, nil, false))
				loadConfigFunc = func() (config.Config, error) { return config.Config{}, errors.New("bad CONFIG_FILE") }
			},
		},
		{
			name: "server",
			setup: func(t *testing.T) {
				stubRun(t, config.Config{Database: config.DatabaseConfig{UseMock: true}}, newStubServer(nil, nil, false))
				newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
				newServerFunc = func(server.Config) (serverLifecycle, error) {
					return nil, errors.New("duplicate resource")
				}
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			if code := run(context.Background()); code != 1 {
				t.Fatalf("expected exit code 1, got %d", code)
			}
		})
	}
}
