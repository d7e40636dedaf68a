package k8s_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestManifest(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the full triad", func(t *testing.T) {
		client, _ := newTestClient(t)
		_, err := client.Create(ctx, testSpec())
		assert.NoError(t, err)

		manifest, err := client.Manifest(ctx, "foo-1700000000000")
		assert.NoError(t, err)
		assert.Contains(t, manifest, "kind: Pod")
		assert.Contains(t, manifest, "kind: Service")
		assert.Contains(t, manifest, "kind: Ingress")
		assert.Contains(t, manifest, "foo.example.org")
	})

	t.Run("skips missing parts of a partial triad", func(t *testing.T) {
		client, clientset := newTestClient(t)
		_, err := client.Create(ctx, testSpec())
		assert.NoError(t, err)
		assert.NoError(t, clientset.NetworkingV1().Ingresses(testNamespace).Delete(ctx, "foo-1700000000000", metav1.DeleteOptions{}))

		manifest, err := client.Manifest(ctx, "foo-1700000000000")
		assert.NoError(t, err)
		assert.Contains(t, manifest, "kind: Pod")
		assert.NotContains(t, manifest, "kind: Ingress")
	})

	t.Run("missing pod is an error", func(t *testing.T) {
		client, _ := newTestClient(t)
		_, err := client.Manifest(ctx, "nope")
		assert.ErrorContains(t, err, "getting pod")
	})
}
