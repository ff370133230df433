package regio

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookPosRead is a hook position that triggers after a register read.
var HookPosRead = &HookPos{Name: "Read"}

// HookPosWrite is a hook position that triggers after a register write.
var HookPosWrite = &HookPos{Name: "Write"}

// HookCtx is the context that holds all the information about the access
// that triggered a hook.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Offset uint32
	Value  uint32
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other types that
// implement the Hookable interface.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
