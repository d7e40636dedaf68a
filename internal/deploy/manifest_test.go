package deploy_test

import (
	"testing"

	"github.com/rassi0429/miragex.app/internal/deploy"
	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func triadSpec() deploy.Spec {
	return deploy.Spec{
		Name: "foo-1700000000000",
		Repo: "https://example.com/foo.git",
		Env:  []deploy.EnvVar{{Key: "KEY", Value: "val"}},
		Host: "foo.example.org",
		Port: 3000,
	}
}

func TestManifests(t *testing.T) {
	pod, svc, ing := deploy.Manifests(triadSpec())

	t.Run("all three resources share the name and label", func(t *testing.T) {
		assert.Equal(t, "foo-1700000000000", pod.Name)
		assert.Equal(t, "foo-1700000000000", svc.Name)
		assert.Equal(t, "foo-1700000000000", ing.Name)
		assert.Equal(t, "foo-1700000000000", pod.Labels[deploy.AppLabel])
		assert.Equal(t, pod.Labels, svc.Spec.Selector)
	})

	t.Run("pod runs clone-or-pull before the app container", func(t *testing.T) {
		assert.Len(t, pod.Spec.InitContainers, 1)
		script := pod.Spec.InitContainers[0].Command[2]
		assert.Contains(t, script, "git clone https://example.com/foo.git")
		assert.Contains(t, script, "git -C /workspace pull")
		assert.Equal(t, pod.Spec.InitContainers[0].VolumeMounts, pod.Spec.Containers[0].VolumeMounts)
	})

	t.Run("app container gets the parsed env and port", func(t *testing.T) {
		app := pod.Spec.Containers[0]
		assert.Equal(t, deploy.AppContainerName, app.Name)
		assert.Contains(t, app.Env, corev1.EnvVar{Name: "KEY", Value: "val"})
		assert.Equal(t, int32(3000), app.Ports[0].ContainerPort)
	})

	t.Run("service forwards 80 to the container port", func(t *testing.T) {
		assert.Equal(t, corev1.ServiceTypeClusterIP, svc.Spec.Type)
		assert.Equal(t, int32(deploy.ServicePort), svc.Spec.Ports[0].Port)
		assert.Equal(t, intstr.FromInt(3000), svc.Spec.Ports[0].TargetPort)
	})

	t.Run("ingress binds the host to the service", func(t *testing.T) {
		assert.Len(t, ing.Spec.Rules, 1)
		rule := ing.Spec.Rules[0]
		assert.Equal(t, "foo.example.org", rule.Host)
		path := rule.HTTP.Paths[0]
		assert.Equal(t, "/", path.Path)
		assert.Equal(t, networkingv1.PathTypePrefix, *path.PathType)
		assert.Equal(t, "foo-1700000000000", path.Backend.Service.Name)
		assert.Equal(t, int32(deploy.ServicePort), path.Backend.Service.Port.Number)
	})

	t.Run("zero port falls back to the default", func(t *testing.T) {
		spec := triadSpec()
		spec.Port = 0
		pod, svc, _ := deploy.Manifests(spec)
		assert.Equal(t, int32(deploy.DefaultContainerPort), pod.Spec.Containers[0].Ports[0].ContainerPort)
		assert.Equal(t, intstr.FromInt(deploy.DefaultContainerPort), svc.Spec.Ports[0].TargetPort)
	})
}
