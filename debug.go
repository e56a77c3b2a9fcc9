package catalog

import "time"

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	buildTime    time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLog reports timing stats through the scene logger.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("draw",
		"build", stats.buildTime,
		"submit", stats.submitTime,
		"total", stats.buildTime+stats.submitTime,
		"commands", stats.commandCount)
}

// debugMaxTreeDepth is the nesting level past which a warning is logged.
const debugMaxTreeDepth = 32

func (sp *Spatial) debugCheckTreeDepth(h Handle) {
	depth := 0
	for p := h; p.Valid(); p = *sp.parent.At(sp.store.indexOf(p)) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		sp.log.Warn("tree depth exceeds threshold",
			"catalog", sp.cfg.Name, "handle", h, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count past which a warning is logged.
const debugMaxChildCount = 1000

func (sp *Spatial) debugCheckChildCount(parent Handle) {
	children, err := sp.Children(parent)
	if err != nil {
		return
	}
	if len(children) > debugMaxChildCount {
		sp.log.Warn("child count exceeds threshold",
			"catalog", sp.cfg.Name, "handle", parent, "children", len(children), "threshold", debugMaxChildCount)
	}
}

// debugZBandOverflow reports a node whose subtree needs more z values than
// its authored depth. The band is grown to fit.
func (sp *Spatial) debugZBandOverflow(i, depth, used int) {
	sp.log.Warn("z band overflows authored depth",
		"catalog", sp.cfg.Name, "handle", sp.store.handleAt(i), "depth", depth, "needed", used)
}

// debugCheckColumns panics if any column has drifted out of step with the
// row count.
func (sp *Spatial) debugCheckColumns() {
	n := sp.store.Len()
	for _, c := range sp.store.columns {
		if c.rowCount() != n {
			panic("catalog debug: column length differs from row count")
		}
	}
}
