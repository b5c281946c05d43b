package dto

// TrajectoryFile is the top level of a trajectory definition file.
// Steps stay generic until their type is known.
type TrajectoryFile struct {
	Name  string           `yaml:"name"`
	Seed  int64            `yaml:"seed"`
	Vars  map[string]any   `yaml:"vars"`
	Steps []map[string]any `yaml:"steps"`
}

// StepHeader holds the fields shared by every step.
type StepHeader struct {
	Type     string `mapstructure:"type"`
	Tag      string `mapstructure:"tag"`
	Priority int    `mapstructure:"priority"`
	Count    *int   `mapstructure:"count"`
}

type TimeoutStep struct {
	Delay any `mapstructure:"delay"`
}

type SetAttributeStep struct {
	Keys   any     `mapstructure:"keys"`
	Values any     `mapstructure:"values"`
	Mod    string  `mapstructure:"mod"`
	Init   float64 `mapstructure:"init"`
}

type LogStep struct {
	Message any    `mapstructure:"message"`
	Level   string `mapstructure:"level"`
}

// RollbackStep goes back Amount steps or to the step tagged Target. A nil Times
// means forever; Check replaces the counter when set.
type RollbackStep struct {
	Amount int    `mapstructure:"amount"`
	Target string `mapstructure:"target"`
	Times  *int   `mapstructure:"times"`
	Check  any    `mapstructure:"check"`
}
