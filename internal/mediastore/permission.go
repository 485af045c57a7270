package mediastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Permission is the user's answer to the library access prompt.
type Permission int

const (
	Undetermined Permission = iota
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "undetermined"
	}
}

// ParsePermission is the inverse of Permission.String.
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "undetermined":
		return Undetermined, nil
	case "granted":
		return Granted, nil
	case "denied":
		return Denied, nil
	}
	return Undetermined, fmt.Errorf("unknown permission %q", s)
}

// ErrPermissionDenied reports that library access was refused.
var ErrPermissionDenied = errors.New("media library permission denied")

// Prompt asks the user whether the application may use the library. A nil
// Prompt grants access.
type Prompt func(ctx context.Context) (bool, error)

// Permissions manages the stored access decision for a Store.
type Permissions struct {
	store  *Store
	prompt Prompt
}

// Permissions returns the permission manager for the library.
func (s *Store) Permissions(prompt Prompt) *Permissions {
	return &Permissions{store: s, prompt: prompt}
}

// Status returns the recorded decision without prompting.
func (p *Permissions) Status(ctx context.Context) (Permission, error) {
	var status string
	err := p.store.db.QueryRowContext(ctx, `SELECT status FROM permission WHERE id = 1`).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return Undetermined, nil
	}
	if err != nil {
		return Undetermined, fmt.Errorf("read permission: %w", err)
	}
	return ParsePermission(status)
}

// Request prompts for access when no decision has been recorded and returns
// the resulting status. A recorded decision is returned as is. Access is
// denied when the library directory cannot be written or when the prompt
// fails; the denial is recorded alongside the prompt error so Revoke can
// reset it. A cancelled context records nothing.
func (p *Permissions) Request(ctx context.Context) (Permission, error) {
	current, err := p.Status(ctx)
	if err != nil || current != Undetermined {
		return current, err
	}
	answer := Granted
	var promptErr error
	if err := probeWritable(p.store.dir); err != nil {
		answer = Denied
	} else if p.prompt != nil {
		ok, err := p.prompt(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Undetermined, ctxErr
			}
			promptErr = fmt.Errorf("permission prompt: %w", err)
		}
		if !ok {
			answer = Denied
		}
	}
	if err := p.set(ctx, answer); err != nil {
		return Undetermined, err
	}
	return answer, promptErr
}

// Revoke forgets the recorded decision so the next Request prompts again.
func (p *Permissions) Revoke(ctx context.Context) error {
	if _, err := p.store.db.ExecContext(ctx, `DELETE FROM permission WHERE id = 1`); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}

func (p *Permissions) set(ctx context.Context, v Permission) error {
	_, err := p.store.db.ExecContext(ctx, `
		INSERT INTO permission (id, status, updated_ns) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, updated_ns = excluded.updated_ns`,
		v.String(), p.store.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record permission: %w", err)
	}
	return nil
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(filepath.Clean(name))
}
