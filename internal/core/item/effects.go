package item

import "github.com/gridquest/gridquest/internal/core/observability/log"

// EffectContext is passed to lifecycle hooks when a container or caller
// triggers them. Target is the gameplay object the effect applies to; the
// framework treats it as opaque.
type EffectContext struct {
	Item   *Item
	Target any
	Log    log.Log
}

// EffectFunc is a side-effecting lifecycle callback.
type EffectFunc func(ctx *EffectContext)

// Effects bundles the optional lifecycle hooks of a definition. Nil hooks
// are skipped.
type Effects struct {
	OnEquip   EffectFunc
	OnUnequip EffectFunc
	OnUse     EffectFunc
	OnPickup  EffectFunc
	OnDrop    EffectFunc
}

func (e Effects) fire(fn EffectFunc, ctx *EffectContext) {
	if fn == nil || ctx == nil {
		return
	}
	if ctx.Log == nil {
		ctx.Log = log.Nop()
	}
	fn(ctx)
}

// FireEquip invokes the OnEquip hook if present.
func (e Effects) FireEquip(ctx *EffectContext) { e.fire(e.OnEquip, ctx) }

// FireUnequip invokes the OnUnequip hook if present.
func (e Effects) FireUnequip(ctx *EffectContext) { e.fire(e.OnUnequip, ctx) }

// FireUse invokes the OnUse hook if present.
func (e Effects) FireUse(ctx *EffectContext) { e.fire(e.OnUse, ctx) }

// FirePickup invokes the OnPickup hook if present.
func (e Effects) FirePickup(ctx *EffectContext) { e.fire(e.OnPickup, ctx) }

// FireDrop invokes the OnDrop hook if present.
func (e Effects) FireDrop(ctx *EffectContext) { e.fire(e.OnDrop, ctx) }
