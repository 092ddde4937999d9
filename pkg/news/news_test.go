package news

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestReturnsCopy(t *testing.T) {
	svc := NewStatic()
	first := svc.Latest(context.Background())
	assert.Len(t, first, 3)
	assert.Equal(t, "Hingem upgrade: backend replying (demo)", first[0].Title)

	first[0].Title = "changed"
	assert.Equal(t, "Hingem upgrade: backend replying (demo)", svc.Latest(context.Background())[0].Title)
}
