package activities

import (
	"fmt"
	"io"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
)

// Timeout delays the entity by Delay units of simulated time.
type Timeout struct {
	domain.Base
	Delay param.Param[float64]
}

// NewTimeout creates a Timeout step.
func NewTimeout(delay param.Param[float64]) *Timeout {
	return &Timeout{
		Base:  domain.NewBase("Timeout", 0),
		Delay: delay,
	}
}

func (t *Timeout) Run(e domain.Entity) (float64, error) {
	d, err := t.Delay.Resolve(e)
	if err != nil {
		return 0, fmt.Errorf("timeout delay: %w", err)
	}
	return d, nil
}

func (t *Timeout) Clone() domain.Activity {
	c := *t
	c.Base = t.Base.Copy()
	return &c
}

func (t *Timeout) Print(w io.Writer, indent int, verbose, brief bool) {
	t.Base.Print(w, indent, verbose, brief)
	domain.PrintArgs(w, brief, true, "delay", t.Delay)
}
