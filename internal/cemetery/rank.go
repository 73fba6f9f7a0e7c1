package cemetery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/logger"
)

// reportPrefix marks files written by reporting tools; directory scans skip
// them so a report is never ranked as an input.
const reportPrefix = "cemetery_analysis_"

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".gif":  true,
	".webp": true,
}

// RankedItem is one image in a Ranking.
type RankedItem struct {
	Rank       int           `json:"rank"` // 1-based; 0 for unranked failures
	Path       string        `json:"path"`
	Score      float64       `json:"score"`
	Likelihood Likelihood    `json:"likelihood,omitempty"`
	Features   FeatureVector `json:"features"`
	Error      string        `json:"error,omitempty"`
	ErrorType  string        `json:"errorType,omitempty"`

	Err error `json:"-"`
}

// Ranking orders a batch of images by score, highest first.
type Ranking struct {
	Lenient bool         `json:"lenient"`
	Total   int          `json:"total"`
	Failed  int          `json:"failed"`
	Items   []RankedItem `json:"items"`
}

// Rank analyzes every path independently and orders them by score.
//
// A failing image never stops the others. In strict mode (the default) a
// failure keeps its error and is listed after the ranked images with Rank 0.
// With Options.Lenient it is ranked with score 0 and an empty feature map,
// and still carries the error text.
//
// Work runs on up to Options.Workers goroutines. The returned error is
// non-nil only when ctx ends before every image was processed; the partial
// ranking is returned with it.
func (a *Analyzer) Rank(ctx context.Context, paths []string) (*Ranking, error) {
	items := make([]RankedItem, len(paths))

	workers := a.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			items[i] = a.rankOne(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	ranking := a.order(items)
	return ranking, ctx.Err()
}

func (a *Analyzer) rankOne(ctx context.Context, path string) RankedItem {
	item := RankedItem{Path: path}
	if err := ctx.Err(); err != nil {
		item.Err = err
	} else {
		result, err := a.Score(path)
		if err == nil {
			item.Score = result.Score
			item.Likelihood = result.Likelihood
			item.Features = result.Features
			return item
		}
		item.Err = err
	}

	item.Error = item.Err.Error()
	item.ErrorType = string(apperrors.TypeOf(item.Err))
	item.Features = FeatureVector{}
	logger.WithFields(logrus.Fields{
		"path":    path,
		"lenient": a.opts.Lenient,
	}).WithError(item.Err).Warn("image analysis failed")
	return item
}

func (a *Analyzer) order(items []RankedItem) *Ranking {
	ranking := &Ranking{Lenient: a.opts.Lenient, Total: len(items)}

	var ranked, failed []RankedItem
	for _, it := range items {
		if it.Err != nil {
			ranking.Failed++
			if !a.opts.Lenient {
				failed = append(failed, it)
				continue
			}
			it.Likelihood = Classify(0)
		}
		ranked = append(ranked, it)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Path < ranked[j].Path
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	sort.SliceStable(failed, func(i, j int) bool { return failed[i].Path < failed[j].Path })

	ranking.Items = make([]RankedItem, 0, len(items))
	ranking.Items = append(ranking.Items, ranked...)
	ranking.Items = append(ranking.Items, failed...)
	return ranking
}

// CollectImages expands args into image paths. Directories contribute their
// image files (by extension, case-insensitive, not recursive, skipping
// reporting output); anything else is passed through unchanged so that a
// missing file surfaces as a load error for that item.
func CollectImages(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, apperrors.NewLoadError(arg, fmt.Errorf("failed to read directory: %w", err))
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, reportPrefix) {
				continue
			}
			if imageExtensions[strings.ToLower(filepath.Ext(name))] {
				paths = append(paths, filepath.Join(arg, name))
			}
		}
	}
	return paths, nil
}
