package profile

import (
	"context"
	"errors"
	"sync"

	"aiahub/internal/errs"
	"aiahub/internal/ports"
)

// Store holds the active profile behind a lock so the watcher can swap it
// while request handlers read.
type Store struct {
	mu      sync.RWMutex
	path    string
	current Profile
}

// NewStore starts with an empty profile. Path may be blank, in which case
// Reload and Watch are no-ops waiting for nothing.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Current returns a copy of the active profile.
func (s *Store) Current() ports.GovernanceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ports.GovernanceProfile{
		Organization:     s.current.Organization,
		ReportFooter:     s.current.Report.Footer,
		ExtraAssessments: append([]string(nil), s.current.Assessments.Extra...),
	}
}

// Reload rereads the profile file and swaps it in atomically. The previous
// profile stays active when the reread fails.
func (s *Store) Reload(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.path == "" {
		return nil
	}

	p, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return nil
}
