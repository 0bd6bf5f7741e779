package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	rollupout "ascent/internal/modules/rollup/port/out"
	"ascent/internal/platform/calendar"
	"ascent/internal/platform/markdown"
)

// PlansDir is where daily plan notes live inside the vault.
const PlansDir = "plans"

type planMeta struct {
	Completion *float64 `yaml:"completion"`
}

// VaultPlanProvider reads <vault>/plans/YYYY-MM-DD.md. The completion
// frontmatter field wins; without it the ratio of ticked checklist items is
// used. A missing note is 0%.
type VaultPlanProvider struct {
	vaultPath string
}

func NewVaultPlanProvider(vaultPath string) rollupout.PlanCompletion {
	return &VaultPlanProvider{vaultPath: vaultPath}
}

func PlanPath(vaultPath string, date calendar.Date) string {
	return filepath.Join(vaultPath, PlansDir, date.String()+".md")
}

func (p *VaultPlanProvider) PercentForDate(ctx context.Context, date calendar.Date) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	raw, err := os.ReadFile(PlanPath(p.vaultPath, date))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read plan %s: %w", date, err)
	}
	meta := planMeta{}
	body, err := markdown.DecodeFrontmatter(string(raw), &meta)
	if err != nil {
		return 0, fmt.Errorf("plan %s: %w", date, err)
	}
	if meta.Completion != nil {
		return *meta.Completion, nil
	}
	return checklistPercent(body), nil
}

func checklistPercent(body string) float64 {
	done, total := 0, 0
	for _, line := range strings.Split(body, "\n") {
		item := strings.TrimSpace(line)
		item = strings.TrimLeft(item, "-*+ ")
		switch {
		case strings.HasPrefix(item, "[x]"), strings.HasPrefix(item, "[X]"):
			done++
			total++
		case strings.HasPrefix(item, "[ ]"):
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) * 100 / float64(total)
}
