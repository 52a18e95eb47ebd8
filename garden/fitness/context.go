package fitness

import "github.com/fernwood-labs/huertogen/garden"

// Context provides the information a ContextAdjuster needs to pick the
// right weight row. Adapted from lixenwraith-vi-fighter's numeric
// threat-level/energy Context interface, narrowed to this system's one
// categorical signal: which objective is driving the request.
type Context interface {
	Objective() garden.Objective
}

// ObjectiveContext is the concrete Context carrying the request's
// objective.
type ObjectiveContext garden.Objective

func (c ObjectiveContext) Objective() garden.Objective { return garden.Objective(c) }
