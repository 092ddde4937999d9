package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	assert.NoError(t, NewService().Ready(context.Background()))
	assert.NoError(t, NewService(stubChecker{name: "a"}).Ready(context.Background()))

	err := NewService(stubChecker{name: "a"}, stubChecker{name: "redis", err: errors.New("refused")}).Ready(context.Background())
	assert.EqualError(t, err, "redis: refused")
}
