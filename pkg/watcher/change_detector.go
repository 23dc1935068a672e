package watcher

import (
	"github.com/ritzau/graphsketch/pkg/config"
)

// ChangeAnalysis describes which settings changed between two loads and
// whether they can be applied to a running server
type ChangeAnalysis struct {
	// Live lists changed keys the editor picks up immediately
	Live []string
	// Restart lists changed keys that only take effect after a restart
	Restart []string
}

// NeedApply reports whether the running editor must be updated
func (a *ChangeAnalysis) NeedApply() bool {
	return len(a.Live) > 0
}

// AnalyzeChanges compares two configurations key by key
func AnalyzeChanges(old, updated *config.Config) *ChangeAnalysis {
	analysis := &ChangeAnalysis{}

	live := func(key string, changed bool) {
		if changed {
			analysis.Live = append(analysis.Live, key)
		}
	}
	restart := func(key string, changed bool) {
		if changed {
			analysis.Restart = append(analysis.Restart, key)
		}
	}

	live("radius", old.Radius != updated.Radius)
	live("tolerance", old.Tolerance != updated.Tolerance)
	live("hit_shape", old.Shape() != updated.Shape())
	live("verbosity", old.Verbosity != updated.Verbosity || old.VerboseCnt != updated.VerboseCnt)

	// The graph's loop bookkeeping and the listener are fixed at startup
	restart("loops", old.LoopPolicy() != updated.LoopPolicy())
	restart("port", old.Port != updated.Port)
	restart("json_logs", old.JSONLogs != updated.JSONLogs)

	return analysis
}
