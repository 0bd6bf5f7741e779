package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ascent/internal/modules/session/domain"
	sessionout "ascent/internal/modules/session/port/out"
	"ascent/internal/platform/markdown"
	"ascent/internal/platform/slug"
)

// VaultSessionJournal writes one note per finished session under
// <vault>/sessions/YYYY/MM/DD/.
type VaultSessionJournal struct {
	vaultPath string
}

func NewVaultSessionJournal(vaultPath string) sessionout.Journal {
	return &VaultSessionJournal{vaultPath: vaultPath}
}

func (j *VaultSessionJournal) Record(_ context.Context, entry domain.Entry) (string, error) {
	date := entry.Date.Time()
	dir := filepath.Join(j.vaultPath, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", entry.StartTime.Format("150405"), slug.Make(entry.GymName))
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               entry.ID,
		"date":             entry.Date.String(),
		"gym":              entry.GymName,
		"started_at":       entry.StartTime.Format(time.RFC3339),
		"ended_at":         entry.EndTime.Format(time.RFC3339),
		"duration_minutes": int(entry.Duration() / time.Minute),
		"duration":         entry.DurationLabel,
	}
	gym := entry.GymName
	if gym == "" {
		gym = "Unnamed gym"
	}
	body := fmt.Sprintf("# Session at %s\n\n- Date: %s\n- From %s to %s (%s)\n\n## Notes\n\n",
		gym, entry.Date, entry.StartTime.Format("15:04"), entry.EndTime.Format("15:04"), entry.DurationLabel)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}
