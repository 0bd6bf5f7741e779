package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	rollupout "ascent/internal/modules/rollup/port/out"
	"ascent/internal/platform/calendar"
	"ascent/internal/platform/markdown"
)

const WeekNoteName = "Climbing.md"

// VaultWeekNote keeps one managed block per week in <vault>/Climbing.md.
// Anything the user wrote around the blocks is preserved.
type VaultWeekNote struct {
	vaultPath string
}

func NewVaultWeekNote(vaultPath string) rollupout.WeekNoteWriter {
	return &VaultWeekNote{vaultPath: vaultPath}
}

func (n *VaultWeekNote) WriteWeek(ctx context.Context, weekStart calendar.Date, summary string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(n.vaultPath, 0o755); err != nil {
		return "", fmt.Errorf("create vault dir: %w", err)
	}
	path := filepath.Join(n.vaultPath, WeekNoteName)
	raw, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read week note: %w", err)
	}
	body := string(raw)
	if body == "" {
		body = "# Climbing\n"
	}
	updated := markdown.NewBlock("week-" + weekStart.String()).Replace(body, summary)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return "", fmt.Errorf("write week note: %w", err)
	}
	return path, nil
}
