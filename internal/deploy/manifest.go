package deploy

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
)

const (
	// AppLabel carries the deployment name and is the only linkage
	// between the three resources of a triad.
	AppLabel = "app"

	// ServicePort is the port the service and the ingress expose.
	ServicePort = 80

	// DefaultContainerPort is the port the deployed application is
	// expected to listen on.
	DefaultContainerPort = 3000

	// AppContainerName is the long-running container; logs are read from
	// it, not from the init container.
	AppContainerName = "app"

	cloneContainerName = "clone"
	workspaceVolume    = "workspace"
	workspacePath      = "/workspace"
	cloneImage         = "alpine/git:latest"
	runtimeImage       = "node:20-alpine"
)

// Spec holds everything needed to compose a deployment triad. It is
// assembled once per deploy request and never persisted.
type Spec struct {
	Name string
	Repo string
	Env  []EnvVar
	Host string
	Port int
}

// Manifests composes the pod, service and ingress descriptors for the
// spec. It performs no network calls; all three resources share the spec
// name and the app label.
func Manifests(spec Spec) (*corev1.Pod, *corev1.Service, *networkingv1.Ingress) {
	port := spec.Port
	if port <= 0 {
		port = DefaultContainerPort
	}

	labels := map[string]string{AppLabel: spec.Name}

	env := make([]corev1.EnvVar, 0, len(spec.Env))
	for _, v := range spec.Env {
		env = append(env, corev1.EnvVar{Name: v.Key, Value: v.Value})
	}

	mount := corev1.VolumeMount{
		Name:      workspaceVolume,
		MountPath: workspacePath,
	}

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:   spec.Name,
			Labels: labels,
		},
		Spec: corev1.PodSpec{
			Volumes: []corev1.Volume{{
				Name: workspaceVolume,
				VolumeSource: corev1.VolumeSource{
					EmptyDir: &corev1.EmptyDirVolumeSource{},
				},
			}},
			InitContainers: []corev1.Container{{
				Name:    cloneContainerName,
				Image:   cloneImage,
				Command: []string{"sh", "-c", cloneOrPull(spec.Repo)},
				VolumeMounts: []corev1.VolumeMount{
					mount,
				},
			}},
			Containers: []corev1.Container{{
				Name:       AppContainerName,
				Image:      runtimeImage,
				WorkingDir: workspacePath,
				Command:    []string{"sh", "-c", "npm install && npm run build && npm start"},
				Ports: []corev1.ContainerPort{{
					Name:          "http",
					ContainerPort: int32(port),
					Protocol:      corev1.ProtocolTCP,
				}},
				Env: env,
				VolumeMounts: []corev1.VolumeMount{
					mount,
				},
			}},
		},
	}

	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:   spec.Name,
			Labels: labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: map[string]string{AppLabel: spec.Name},
			Ports: []corev1.ServicePort{{
				Name:       "http",
				Port:       ServicePort,
				TargetPort: intstr.FromInt(port),
				Protocol:   corev1.ProtocolTCP,
			}},
		},
	}

	ing := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:   spec.Name,
			Labels: labels,
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{{
				Host: spec.Host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path:     "/",
							PathType: ptr.To(networkingv1.PathTypePrefix),
							Backend: networkingv1.IngressBackend{
								Service: &networkingv1.IngressServiceBackend{
									Name: spec.Name,
									Port: networkingv1.ServiceBackendPort{
										Number: ServicePort,
									},
								},
							},
						}},
					},
				},
			}},
		},
	}

	return pod, svc, ing
}

// cloneOrPull makes repeated initialization idempotent: a restarted init
// container finds the existing checkout and pulls instead of cloning.
func cloneOrPull(repo string) string {
	return fmt.Sprintf(
		"if [ -d %[1]s/.git ]; then git -C %[1]s pull; else git clone %[2]s %[1]s; fi",
		workspacePath, repo,
	)
}
