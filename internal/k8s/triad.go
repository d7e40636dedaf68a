package k8s

import (
	"context"
	"time"

	"github.com/rassi0429/miragex.app/internal/deploy"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DeploymentStatus is one row of the deployment listing, reconstructed on
// every call by querying the platform.
type DeploymentStatus struct {
	Name    string
	Phase   string
	Host    string
	Created time.Time

	// Complete reports whether the service and the ingress of the triad
	// still exist. A false value means the triad is in a partial state
	// and needs a re-run of delete.
	Complete bool
}

type step struct {
	name       string
	run        func(context.Context) error
	compensate func(context.Context) error
}

// Create provisions the triad in strict order: pod, service, ingress.
// Each call has its own failure domain; when one fails, compensating
// deletes are attempted for the steps that already completed, and the
// failing step's error is returned. Compensation failures are logged,
// not surfaced. Returns the created pod name.
func (c *Client) Create(ctx context.Context, spec deploy.Spec) (string, error) {
	pod, svc, ing := deploy.Manifests(spec)

	pods := c.clientset.CoreV1().Pods(c.namespace)
	services := c.clientset.CoreV1().Services(c.namespace)
	ingresses := c.clientset.NetworkingV1().Ingresses(c.namespace)

	steps := []step{
		{
			name: "creating pod",
			run: func(ctx context.Context) error {
				_, err := pods.Create(ctx, pod, metav1.CreateOptions{})
				return err
			},
			compensate: func(ctx context.Context) error {
				return pods.Delete(ctx, pod.Name, metav1.DeleteOptions{})
			},
		},
		{
			name: "creating service",
			run: func(ctx context.Context) error {
				_, err := services.Create(ctx, svc, metav1.CreateOptions{})
				return err
			},
			compensate: func(ctx context.Context) error {
				return services.Delete(ctx, svc.Name, metav1.DeleteOptions{})
			},
		},
		{
			name: "creating ingress",
			run: func(ctx context.Context) error {
				_, err := ingresses.Create(ctx, ing, metav1.CreateOptions{})
				return err
			},
		},
	}

	completed := []step{}
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			c.compensate(ctx, completed)
			return "", c.error(ctx, err, s.name)
		}
		completed = append(completed, s)
	}

	c.log.WithField("deployment", spec.Name).Info("created deployment triad")
	return pod.Name, nil
}

// compensate undoes completed steps in reverse order, best effort.
func (c *Client) compensate(ctx context.Context, completed []step) {
	for i := len(completed) - 1; i >= 0; i-- {
		s := completed[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			c.log.WithError(err).Warnf("compensating %s", s.name)
		}
	}
}

// List fetches all pods, services and ingresses in the namespace with
// three independent calls and joins them by name. A pod without a
// matching ingress is listed with an empty host. The order is the order
// the platform returned the pods.
func (c *Client) List(ctx context.Context) ([]DeploymentStatus, error) {
	pods, err := c.clientset.CoreV1().Pods(c.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, c.error(ctx, err, "listing pods")
	}

	services, err := c.clientset.CoreV1().Services(c.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, c.error(ctx, err, "listing services")
	}

	ingresses, err := c.clientset.NetworkingV1().Ingresses(c.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, c.error(ctx, err, "listing ingresses")
	}

	serviceNames := map[string]bool{}
	for _, svc := range services.Items {
		serviceNames[svc.Name] = true
	}

	ret := []DeploymentStatus{}
	for _, pod := range pods.Items {
		status := DeploymentStatus{
			Name:    pod.Name,
			Phase:   string(pod.Status.Phase),
			Created: pod.GetCreationTimestamp().Time,
		}
		for _, ing := range ingresses.Items {
			if ing.Name != pod.Name {
				continue
			}
			if len(ing.Spec.Rules) > 0 {
				status.Host = ing.Spec.Rules[0].Host
			}
			status.Complete = serviceNames[pod.Name]
			break
		}
		ret = append(ret, status)
	}

	return ret, nil
}

// Delete tears the triad down in strict order: pod, service, ingress.
// The first failure aborts the remaining deletes and is surfaced,
// not-found included, leaving a partially deleted triad for the caller
// to reconcile by running delete again.
func (c *Client) Delete(ctx context.Context, name string) error {
	if err := c.clientset.CoreV1().Pods(c.namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return c.error(ctx, err, "deleting pod")
	}
	if err := c.clientset.CoreV1().Services(c.namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return c.error(ctx, err, "deleting service")
	}
	if err := c.clientset.NetworkingV1().Ingresses(c.namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return c.error(ctx, err, "deleting ingress")
	}

	c.log.WithField("deployment", name).Info("deleted deployment triad")
	return nil
}
