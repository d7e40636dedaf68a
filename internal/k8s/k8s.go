package k8s

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the clientset for one namespace. The namespace is the sole
// shared mutable resource; the client itself keeps no deployment state.
type Client struct {
	clientset kubernetes.Interface
	namespace string
	errors    metric.Int64Counter
	log       logrus.FieldLogger
}

// New creates a namespace-scoped client. It prefers in-cluster
// configuration and falls back to the given kubeconfig when running
// locally.
func New(namespace, kubeconfig string, errors metric.Int64Counter, log logrus.FieldLogger) (*Client, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		if kubeconfig == "" {
			return nil, fmt.Errorf("create in-cluster config: %w", err)
		}
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("create kubeconfig client: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	return NewWithClientset(clientset, namespace, errors, log), nil
}

// NewWithClientset creates a client around an existing clientset. Tests
// pass a fake clientset here.
func NewWithClientset(clientset kubernetes.Interface, namespace string, errors metric.Int64Counter, log logrus.FieldLogger) *Client {
	return &Client{
		clientset: clientset,
		namespace: namespace,
		errors:    errors,
		log:       log,
	}
}

func (c *Client) error(ctx context.Context, err error, msg string) error {
	if c.errors != nil {
		c.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("component", "k8s-client")))
	}
	c.log.WithError(err).Error(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
