package k8s_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogs(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	_, err := client.Create(ctx, testSpec())
	assert.NoError(t, err)

	// the fake clientset serves a static body for any log request
	logs, err := client.Logs(ctx, "foo-1700000000000", nil)
	assert.NoError(t, err)
	assert.Equal(t, "fake logs", logs)
}
