package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, aborted(ctx, context.Canceled), "not cancelled by the operator")
	cancel()

	assert.True(t, aborted(ctx, context.Canceled))
	assert.True(t, aborted(ctx, fmt.Errorf("wait aborted: %w", context.Canceled)))
	assert.False(t, aborted(ctx, nil))
	assert.False(t, aborted(ctx, errors.New("bus off")))
}
