package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPreyExtinction     BookmarkType = "prey_extinction"
	BookmarkPredatorExtinction BookmarkType = "predator_extinction"
	BookmarkPredatorRecovery   BookmarkType = "predator_recovery"
	BookmarkPreyCrash          BookmarkType = "prey_crash"
	BookmarkCamouflageGain     BookmarkType = "camouflage_gain"
	BookmarkStableEcosystem    BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically detected moment of interest.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments from consecutive windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPredMin      int // minimum carnivore count since the last recovery
	recentPreyPeak     int // peak herbivore count since the last crash
	stableWindowsCount int // consecutive windows with stable populations
	prev               *WindowStats
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		recentPredMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bookmarks = append(bookmarks, bd.checkExtinction(stats)...)
	if bd.prev != nil {
		add(bd.checkPredatorRecovery(stats))
		add(bd.checkPreyCrash(stats))
		add(bd.checkCamouflageGain(stats))
		add(bd.checkStableEcosystem(stats))
	}

	bd.addToHistory(stats)
	prev := stats
	bd.prev = &prev

	if bd.recentPredMin < 0 || stats.Carnivores < bd.recentPredMin {
		bd.recentPredMin = stats.Carnivores
	}
	if stats.Herbivores > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.Herbivores
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	// Only the window in which a species disappears triggers
	prevHerb, prevCarn := -1, -1
	if bd.prev != nil {
		prevHerb, prevCarn = bd.prev.Herbivores, bd.prev.Carnivores
	}

	var out []Bookmark
	if stats.Carnivores == 0 && prevCarn != 0 {
		out = append(out, Bookmark{
			Type:        BookmarkPredatorExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Raptors extinct with %d octocats left", stats.Herbivores),
		})
	}
	if stats.Herbivores == 0 && prevHerb != 0 {
		out = append(out, Bookmark{
			Type:        BookmarkPreyExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Octocats extinct with %d raptors left", stats.Carnivores),
		})
	}
	return out
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if bd.recentPredMin <= 0 || bd.recentPredMin > 3 {
		return nil
	}

	threshold := bd.recentPredMin * 3
	if stats.Carnivores >= threshold && stats.Carnivores >= 6 {
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.Carnivores

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Raptor population recovered from %d to %d", oldMin, stats.Carnivores),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Herbivores)/float64(bd.recentPreyPeak)
	if dropPercent > 0.30 && stats.Herbivores < bd.recentPreyPeak-10 {
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.Herbivores

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Octocats crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Herbivores),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCamouflageGain(stats WindowStats) *Bookmark {
	if !stats.HasFitness {
		return nil
	}
	history := bd.recent(3)
	if len(history) < 3 {
		return nil
	}

	var sum float64
	for _, h := range history {
		if !h.HasFitness {
			return nil
		}
		sum += h.FitnessMean
	}
	avg := sum / float64(len(history))

	if stats.FitnessMean-avg >= 0.1 {
		return &Bookmark{
			Type:        BookmarkCamouflageGain,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Octocat fitness rose to %.2f from a rolling %.2f", stats.FitnessMean, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Herbivores < 10 || stats.Carnivores < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.recent(4)
	if len(history) < 4 {
		return nil
	}

	prey := make([]float64, len(history))
	pred := make([]float64, len(history))
	for i, h := range history {
		prey[i] = float64(h.Herbivores)
		pred[i] = float64(h.Carnivores)
	}
	preyMean, preyStd := meanStd(prey)
	predMean, predStd := meanStd(pred)

	// Coefficient of variation under 20% for both species
	if preyMean > 0 && predMean > 0 && preyStd/preyMean < 0.2 && predStd/predMean < 0.2 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d octocats, %d raptors over 5+ windows", stats.Herbivores, stats.Carnivores),
		}
	}
	return nil
}
