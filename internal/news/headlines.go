package news

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
)

// Source returns the headlines published for an ISO date.
type Source interface {
	Headlines(ctx context.Context, date string) []model.Headline
}

// FileSource reads <Dir>/<YYYY-MM-DD>.json, a JSON array of headlines.
type FileSource struct {
	Dir string
}

// NewFileSource creates a headline source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Headlines never fails: a missing or unreadable file is an empty list.
func (s *FileSource) Headlines(_ context.Context, date string) []model.Headline {
	if date == "" || filepath.Base(date) != date {
		return []model.Headline{}
	}
	path := filepath.Join(s.Dir, date+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("read headlines failed", zap.String("path", path), zap.Error(err))
		}
		return []model.Headline{}
	}
	var items []model.Headline
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("decode headlines failed", zap.String("path", path), zap.Error(err))
		return []model.Headline{}
	}
	if items == nil {
		items = []model.Headline{}
	}
	return items
}
