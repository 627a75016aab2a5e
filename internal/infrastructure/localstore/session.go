package localstore

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

var ErrNoSession = stderrors.New("not logged in")

// Session is the login result kept between CLI runs.
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Principal user.Principal `json:"principal"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionFile stores the session with owner-only permissions.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: strings.TrimSpace(path)}
}

func (f *SessionFile) Load() (Session, error) {
	raw, err := os.ReadFile(f.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session file %s: %w", f.path, err)
	}

	var out Session
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return Session{}, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	if strings.TrimSpace(out.Token) == "" {
		return Session{}, ErrNoSession
	}
	return out, nil
}

func (f *SessionFile) Save(s Session) error {
	raw, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return writeFileAtomic(f.path, raw, 0o600)
}

func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file %s: %w", f.path, err)
	}
	return nil
}
