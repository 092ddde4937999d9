package availability

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

const (
	replyReactivated = "(Hingem reactivated on server)"
	replyShutDown    = "(Hingem is currently shut down on server)"
	replyDeactivated = "(Hingem has been shut down on server)"
	replyToggleFail  = "(Hingem could not change its state on server)"
)

// Decision tells the chat route whether to answer itself or pass through.
type Decision struct {
	Handled bool
	Status  int
	Reply   string
}

var toggleFailed = Decision{Handled: true, Status: http.StatusServiceUnavailable, Reply: replyToggleFail}

// Gate toggles the switch when a chat message equals the shutdown token
// and rejects chat while the switch is off.
type Gate struct {
	sw       Switch
	token    Token
	log      *zap.Logger
	onChange func(active bool)
}

func NewGate(sw Switch, token Token, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{sw: sw, token: token, log: log}
}

// OnChange registers a callback fired after every successful toggle.
func (g *Gate) OnChange(fn func(active bool)) { g.onChange = fn }

// Evaluate lets chat through when the flag cannot be read. A matched token
// is always answered here, even when the flag cannot be written.
func (g *Gate) Evaluate(ctx context.Context, message string) Decision {
	active, err := g.sw.Active(ctx)
	if err != nil {
		g.log.Warn("availability check failed", zap.Error(err))
		return Decision{}
	}
	match := g.token.Matches(message)
	switch {
	case !active && match:
		if !g.set(ctx, true) {
			return toggleFailed
		}
		return Decision{Handled: true, Status: http.StatusOK, Reply: replyReactivated}
	case !active:
		return Decision{Handled: true, Status: http.StatusServiceUnavailable, Reply: replyShutDown}
	case match:
		if !g.set(ctx, false) {
			return toggleFailed
		}
		return Decision{Handled: true, Status: http.StatusOK, Reply: replyDeactivated}
	}
	return Decision{}
}

// Set applies an explicit toggle, e.g. from the admin route.
func (g *Gate) Set(ctx context.Context, active bool) error {
	if err := g.sw.SetActive(ctx, active); err != nil {
		return err
	}
	g.log.Info("server availability changed", zap.Bool("serverActive", active))
	if g.onChange != nil {
		g.onChange(active)
	}
	return nil
}

func (g *Gate) set(ctx context.Context, active bool) bool {
	if err := g.Set(ctx, active); err != nil {
		g.log.Warn("availability toggle failed", zap.Error(err))
		return false
	}
	return true
}
