package k8s_test

import (
	"testing"

	"github.com/rassi0429/miragex.app/internal/k8s"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	log, _ := logrustest.NewNullLogger()

	t.Run("fails outside a cluster without a kubeconfig", func(t *testing.T) {
		_, err := k8s.New("default", "", nil, log)
		assert.ErrorContains(t, err, "create in-cluster config")
	})

	t.Run("fails with an unreadable kubeconfig", func(t *testing.T) {
		_, err := k8s.New("default", "/does/not/exist", nil, log)
		assert.ErrorContains(t, err, "create kubeconfig client")
	})
}
