package k8s

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Manifest renders the live triad as a multi-document YAML manifest. A
// missing service or ingress is skipped so a partially created or
// partially deleted triad can still be inspected; a missing pod is an
// error.
func (c *Client) Manifest(ctx context.Context, name string) (string, error) {
	docs := []string{}

	pod, err := c.clientset.CoreV1().Pods(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", c.error(ctx, err, "getting pod")
	}
	doc, err := renderManifest("v1", "Pod", pod.ObjectMeta, pod.Spec)
	if err != nil {
		return "", c.error(ctx, err, "rendering pod manifest")
	}
	docs = append(docs, doc)

	svc, err := c.clientset.CoreV1().Services(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return "", c.error(ctx, err, "getting service")
	}
	if err == nil {
		doc, err := renderManifest("v1", "Service", svc.ObjectMeta, svc.Spec)
		if err != nil {
			return "", c.error(ctx, err, "rendering service manifest")
		}
		docs = append(docs, doc)
	}

	ing, err := c.clientset.NetworkingV1().Ingresses(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return "", c.error(ctx, err, "getting ingress")
	}
	if err == nil {
		doc, err := renderManifest("networking.k8s.io/v1", "Ingress", ing.ObjectMeta, ing.Spec)
		if err != nil {
			return "", c.error(ctx, err, "rendering ingress manifest")
		}
		docs = append(docs, doc)
	}

	return strings.Join(docs, "---\n"), nil
}

func renderManifest(apiVersion, kind string, meta metav1.ObjectMeta, spec any) (string, error) {
	specMap, err := toMap(spec)
	if err != nil {
		return "", fmt.Errorf("converting spec: %w", err)
	}

	tmp := map[string]any{}
	tmp["apiVersion"] = apiVersion
	tmp["kind"] = kind
	tmp["metadata"] = map[string]any{
		"name":      meta.Name,
		"namespace": meta.Namespace,
		"labels":    meta.Labels,
	}
	tmp["spec"] = specMap

	b, err := yaml.Marshal(tmp)
	if err != nil {
		return "", fmt.Errorf("marshalling manifest: %w", err)
	}
	return string(b), nil
}

func toMap(spec any) (map[string]any, error) {
	b, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	ret := map[string]any{}
	if err := json.Unmarshal(b, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
