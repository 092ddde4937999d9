package distress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
	"github.com/shappycc2010-ctrl/HinGem/pkg/repository/memory"
)

type failingRepo struct{}

func (failingRepo) Create(context.Context, distress.Signal) error { return errors.New("db down") }
func (failingRepo) List(context.Context, int, int) ([]distress.Signal, error) {
	return nil, errors.New("db down")
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDistressRepository()
	count := 0
	svc := distress.NewService(repo, nil, func() { count++ })

	sig, err := svc.Record(ctx, []byte(` {"lat":1.5,"msg":"help"} `), distress.Meta{RemoteAddr: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":1.5,"msg":"help"}`, string(sig.Payload))
	assert.Equal(t, "10.0.0.1", sig.RemoteAddr)
	assert.False(t, sig.ReceivedAt.IsZero())
	assert.Equal(t, 1, count)

	empty, err := svc.Record(ctx, nil, distress.Meta{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty.Payload))

	list, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, empty.ID, list[0].ID)
}

func TestRecordRejectsInvalidJSON(t *testing.T) {
	svc := distress.NewService(memory.NewDistressRepository(), nil, nil)
	_, err := svc.Record(context.Background(), []byte("{not json"), distress.Meta{})
	assert.ErrorIs(t, err, distress.ErrInvalidPayload)
}

func TestRecordWrapsRepositoryError(t *testing.T) {
	count := 0
	svc := distress.NewService(failingRepo{}, nil, func() { count++ })
	_, err := svc.Record(context.Background(), []byte(`{}`), distress.Meta{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store distress signal")
	assert.Zero(t, count)
}

func TestRecordOwnsPayload(t *testing.T) {
	ctx := context.Background()
	svc := distress.NewService(memory.NewDistressRepository(), nil, nil)

	buf := []byte(`{"where":"here","n":1}`)
	_, err := svc.Record(ctx, buf, distress.Meta{})
	require.NoError(t, err)
	copy(buf, `[9999999999999999999]}`)

	list, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"where":"here","n":1}`, string(list[0].Payload))
}
