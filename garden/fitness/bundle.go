package fitness

// Bundle carries the six named sub-metrics from the
// per-metric computations in evaluator.go to the Aggregator. Adapted
// from lixenwraith-vi-fighter/genetic/tracking/bundle.go's
// map[string]float64 MetricBundle, narrowed to this system's fixed
// metric set (no tick-by-tick accumulation is needed here, so the
// Collector machinery that bundle.go also defined was dropped — see
// DESIGN.md).
type Bundle map[string]float64

// Standard metric keys, matching the layout evaluation abbreviations.
const (
	MetricCEE   = "cee"
	MetricPSRNT = "psrnt"
	MetricEH    = "eh"
	MetricUE    = "ue"
	MetricCS    = "cs"
	MetricBSN   = "bsn"
)

// Get returns the metric value or a default when absent.
func (b Bundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}
