package fitness

// Aggregator calculates fitness score from collected metrics
type Aggregator interface {
	Calculate(metrics Bundle, ctx Context) float64
}