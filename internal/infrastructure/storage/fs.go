package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"svw.info/nonogram/internal/domain"
)

// FS stores each accepted puzzle as one JSON file under a tier-named
// subdirectory of its root.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var tiers = []domain.Tier{
	domain.Trivial, domain.Easy, domain.Medium, domain.Hard,
	domain.Challenging, domain.Expert, domain.Master,
}

func (s *FS) pathFor(id string, t domain.Tier) string {
	return filepath.Join(s.dir, t.String(), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	target := s.pathFor(p.ID, p.Tier)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	for _, t := range tiers {
		data, err := os.ReadFile(s.pathFor(id, t))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.Puzzle
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	for _, t := range tiers {
		dir := filepath.Join(s.dir, t.String())
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var p domain.Puzzle
			if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
				continue
			}
			out = append(out, domain.PuzzleMeta{
				ID:        p.ID,
				Width:     p.Width,
				Height:    p.Height,
				Tier:      p.Tier,
				CreatedAt: p.CreatedAt,
			})
		}
	}
	return out, nil
}
