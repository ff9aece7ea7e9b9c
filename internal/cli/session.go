package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/config"
	"github.com/recruitdesk/recruitdesk/internal/log"
)

// session holds what every command needs: the project root, its config, an
// API client and the event log.
type session struct {
	root   string
	cfg    *config.Config
	client *admin.Client
	logger *log.Logger // nil when logging is disabled
}

func openSession() (*session, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.API.BaseURL = apiURLFlag
	}
	if fileURLFlag != "" {
		cfg.API.FileServerURL = fileURLFlag
	}

	s := &session{
		root:   root,
		cfg:    cfg,
		client: admin.New(cfg.API.BaseURL, admin.WithTimeout(cfg.Timeout())),
	}
	if cfg.Log.Enabled {
		logger, err := log.NewLogger(root)
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		s.logger = logger
	}
	return s, nil
}

// request returns a context carrying a fresh request id.
func (s *session) request(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	if parent == nil {
		parent = context.Background()
	}
	return admin.WithRequestID(parent, id), id
}

// record appends an outcome event to the log.
func (s *session) record(ev log.LogEvent, start time.Time, err error) {
	ev.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		ev.Error = err.Error()
		ev.Status = admin.StatusCode(err)
	}
	_ = s.logger.Append(ev)
}
