package automation

import (
	"sync"

	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// MechanismPool hands out scratch copies of a base mechanism and recycles
// their storage between trials.
type MechanismPool struct {
	pool sync.Pool
	base *kin.Mechanism
}

func NewMechanismPool(base *kin.Mechanism) *MechanismPool {
	return &MechanismPool{
		base: base,
		pool: sync.Pool{
			New: func() interface{} {
				return kin.New()
			},
		},
	}
}

// Get returns a mechanism equal to the base. The base must not change while
// the pool is in use.
func (p *MechanismPool) Get() *kin.Mechanism {
	m := p.pool.Get().(*kin.Mechanism)
	p.base.CopyTo(m)
	return m
}

func (p *MechanismPool) Put(m *kin.Mechanism) {
	if m != nil && m != p.base {
		p.pool.Put(m)
	}
}
