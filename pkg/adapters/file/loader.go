package file

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/simchain/internal/dto"
	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/pkg/activities"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/dsl"
	"github.com/aretw0/simchain/pkg/host"
	"github.com/aretw0/simchain/pkg/operator"
	"github.com/aretw0/simchain/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownStep is returned for a step type the loader does not know.
	ErrUnknownStep = errors.New("unknown step type")
	// ErrInvalidStep is returned when a step is malformed.
	ErrInvalidStep = errors.New("invalid step")
)

var headerKeys = map[string]struct{}{
	"type":     {},
	"tag":      {},
	"priority": {},
	"count":    {},
}

// Loader builds trajectories from YAML definitions.
type Loader struct {
	env      *host.Env
	seed     *int64
	registry *registry.Registry
	logger   *slog.Logger
}

// Option configures the Loader.
type Option func(*Loader)

// WithEnv binds expressions against env instead of a fresh one.
// Variables declared in the file are added to it, and a declared seed reseeds it.
func WithEnv(env *host.Env) Option {
	return func(l *Loader) {
		l.env = env
	}
}

// WithSeed overrides the seed declared in the file.
func WithSeed(seed int64) Option {
	return func(l *Loader) {
		l.seed = &seed
	}
}

// WithRegistry resolves step types through r. Built-in types are added to r unless it
// already registers the same names.
func WithRegistry(r *registry.Registry) Option {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithLogger sets the logger handed to log steps.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a new Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = registry.NewRegistry()
	}
	l.register()
	return l
}

// Load reads and builds the trajectory defined in path.
func (l *Loader) Load(path string) (*chain.Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	traj, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traj, nil
}

// ReadSeed returns the seed declared in the definition file at path, zero when absent.
func ReadSeed(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read definition: %w", err)
	}
	var def dto.TrajectoryFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return 0, fmt.Errorf("failed to parse definition: %w", err)
	}
	return def.Seed, nil
}

// Parse builds a trajectory from a YAML document.
func (l *Loader) Parse(data []byte) (*chain.Trajectory, error) {
	var def dto.TrajectoryFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if def.Name == "" {
		def.Name = "anonymous"
	}

	seed := def.Seed
	if l.seed != nil {
		seed = *l.seed
	}
	env := l.env
	switch {
	case env == nil:
		env = host.NewEnv(seed)
	case def.Seed != 0 || l.seed != nil:
		env.Seed(seed)
	}
	for k, v := range def.Vars {
		env.Set(k, v)
	}

	b := dsl.New(def.Name, dsl.WithLogger(l.logger))
	for i, raw := range def.Steps {
		if err := l.step(b, raw, env); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	traj := b.Build()
	l.logger.Debug("trajectory loaded", "name", traj.Name(), "steps", traj.Len())
	return traj, nil
}

func (l *Loader) step(b *dsl.Builder, raw map[string]any, env *host.Env) error {
	var header dto.StepHeader
	if err := mapstructure.WeakDecode(raw, &header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStep, err)
	}

	act, err := l.build(header.Type, raw, env)
	if err != nil {
		return err
	}

	b.Add(act).Tag(header.Tag).Priority(header.Priority)
	if header.Count != nil {
		if *header.Count < 1 {
			return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidStep, *header.Count)
		}
		b.Count(*header.Count)
	}
	return nil
}

func (l *Loader) build(kind string, raw map[string]any, env *host.Env) (domain.Activity, error) {
	if kind == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidStep)
	}
	fn, ok := l.registry.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, kind)
	}
	return fn(raw, env)
}

// register adds the built-in step types that are not already taken.
func (l *Loader) register() {
	builtins := map[string]registry.StepFunc{
		"timeout":       buildTimeout,
		"set_attribute": buildSetAttribute,
		"log":           l.buildLog,
		"rollback":      buildRollback,
	}
	for name, fn := range builtins {
		if _, taken := l.registry.Lookup(name); !taken {
			l.registry.Register(name, fn)
		}
	}
}

func buildTimeout(raw map[string]any, env *host.Env) (domain.Activity, error) {
	var spec dto.TimeoutStep
	if err := DecodeStep(raw, &spec); err != nil {
		return nil, err
	}
	delay, err := host.Number(spec.Delay, env)
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}
	return activities.NewTimeout(delay), nil
}

func buildSetAttribute(raw map[string]any, env *host.Env) (domain.Activity, error) {
	var spec dto.SetAttributeStep
	if err := DecodeStep(raw, &spec); err != nil {
		return nil, err
	}
	mod, err := parseMod(spec.Mod)
	if err != nil {
		return nil, err
	}
	keys, err := host.Strings(spec.Keys, env)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	values, err := host.Numbers(spec.Values, env)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return activities.NewSetAttribute(keys, values, mod, spec.Init), nil
}

func (l *Loader) buildLog(raw map[string]any, env *host.Env) (domain.Activity, error) {
	var spec dto.LogStep
	if err := DecodeStep(raw, &spec); err != nil {
		return nil, err
	}
	msg, err := host.Text(spec.Message, env)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	level := slog.LevelInfo
	if spec.Level != "" {
		if level, err = logging.ParseLevel(spec.Level); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
	}
	return activities.NewLog(msg, level, l.logger), nil
}

func buildRollback(raw map[string]any, env *host.Env) (domain.Activity, error) {
	var spec dto.RollbackStep
	if err := DecodeStep(raw, &spec); err != nil {
		return nil, err
	}
	return rollback(spec, env)
}

func rollback(spec dto.RollbackStep, env *host.Env) (domain.Activity, error) {
	if spec.Amount < 0 {
		return nil, fmt.Errorf("%w: rollback amount must not be negative, got %d", ErrInvalidStep, spec.Amount)
	}
	times := activities.Infinite
	if spec.Times != nil && *spec.Times >= 0 {
		times = *spec.Times
	}

	var r *activities.Rollback
	if spec.Target != "" {
		r = activities.NewRollbackTo(spec.Target, times)
	} else {
		r = activities.NewRollback(spec.Amount, times)
	}
	if spec.Check != nil {
		check, err := host.Bool(spec.Check, env)
		if err != nil {
			return nil, fmt.Errorf("check: %w", err)
		}
		r.Check = check
	}
	return r, nil
}

func parseMod(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	runes := []rune(s)
	if len(runes) != 1 || !operator.Valid(runes[0]) {
		return 0, fmt.Errorf("%w: unknown modifier %q", ErrInvalidStep, s)
	}
	return runes[0], nil
}

// DecodeStep fills spec from a raw step definition, converting weakly typed values, and
// rejects keys that belong to neither spec nor the shared header (type, tag, priority,
// count). Custom step builders should use it to get the same strictness.
func DecodeStep(raw map[string]any, spec any) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           spec,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStep, err)
	}
	for _, key := range md.Unused {
		if _, ok := headerKeys[key]; !ok {
			return fmt.Errorf("%w: unexpected field %q", ErrInvalidStep, key)
		}
	}
	return nil
}
