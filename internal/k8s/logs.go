package k8s

import (
	"context"
	"io"

	"github.com/rassi0429/miragex.app/internal/deploy"
	corev1 "k8s.io/api/core/v1"
)

// Logs returns the accumulated output of the app container of the named
// pod. The init container is not a valid target, it exits once the
// checkout is done. Platform errors (pod missing, container not started
// yet) are surfaced verbatim.
func (c *Client) Logs(ctx context.Context, name string, tailLines *int64) (string, error) {
	req := c.clientset.CoreV1().Pods(c.namespace).GetLogs(name, &corev1.PodLogOptions{
		Container: deploy.AppContainerName,
		TailLines: tailLines,
	})

	stream, err := req.Stream(ctx)
	if err != nil {
		return "", c.error(ctx, err, "getting logs")
	}
	defer stream.Close()

	b, err := io.ReadAll(stream)
	if err != nil {
		return "", c.error(ctx, err, "reading logs")
	}

	return string(b), nil
}
