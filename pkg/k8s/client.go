package k8s

import (
	"context"
	"errors"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Client wraps the typed clientset for a single kubeconfig context. Switching
// contexts constructs a new Client rather than mutating this one, so requests
// in flight against the old credential can never observe the new one.
type Client struct {
	Clientset   kubernetes.Interface
	Metrics     metricsclient.Interface
	ContextName string

	kubeconfig string
}

// NewClient builds a client for the kubeconfig's current context. An empty
// kubeconfig path uses the standard resolution (KUBECONFIG, ~/.kube/config).
func NewClient(kubeconfig string) (*Client, error) {
	return NewClientForContext(kubeconfig, "")
}

// NewClientForContext builds a fresh client bound to the named context.
func NewClientForContext(kubeconfig, contextName string) (*Client, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		loadingRules.ExplicitPath = kubeconfig
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, err
	}

	if contextName == "" {
		raw, err := clientConfig.RawConfig()
		if err == nil {
			contextName = raw.CurrentContext
		}
	}

	// Metrics are best effort. A cluster without metrics-server still works;
	// the detail view just omits the usage line.
	metrics, err := metricsclient.NewForConfig(restConfig)
	if err != nil {
		metrics = nil
	}

	return &Client{
		Clientset:   clientset,
		Metrics:     metrics,
		ContextName: contextName,
		kubeconfig:  kubeconfig,
	}, nil
}

// WithContext returns a new Client for the named context, sharing the same
// kubeconfig path as the receiver.
func (c *Client) WithContext(contextName string) (*Client, error) {
	return NewClientForContext(c.kubeconfig, contextName)
}

// ListContexts reads the kubeconfig and returns all context names plus the
// currently selected one.
func (c *Client) ListContexts() ([]string, string, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.kubeconfig != "" {
		loadingRules.ExplicitPath = c.kubeconfig
	}
	raw, err := loadingRules.Load()
	if err != nil {
		return nil, "", err
	}

	names := make([]string, 0, len(raw.Contexts))
	for name := range raw.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, raw.CurrentContext, nil
}

// ListPods returns pods in the namespace, or across all namespaces when the
// namespace is empty.
func (c *Client) ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error) {
	pods, err := c.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	return pods.Items, nil
}

func (c *Client) ListNamespaces(ctx context.Context) ([]corev1.Namespace, error) {
	ns, err := c.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	return ns.Items, nil
}

func (c *Client) GetPod(ctx context.Context, namespace, name string) (*corev1.Pod, error) {
	return c.Clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
}

// GetPodLogs fetches the full log text for one container. An empty container
// name lets the API server pick the only container; tailLines of 0 fetches
// everything.
func (c *Client) GetPodLogs(ctx context.Context, namespace, name, container string, tailLines int64) (string, error) {
	opts := &corev1.PodLogOptions{Container: container}
	if tailLines > 0 {
		opts.TailLines = &tailLines
	}
	req := c.Clientset.CoreV1().Pods(namespace).GetLogs(name, opts)
	raw, err := req.DoRaw(ctx)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// GetPodUsage returns current CPU (millicores) and memory (MiB) for the pod,
// summed over its containers.
func (c *Client) GetPodUsage(ctx context.Context, namespace, name string) (int64, int64, error) {
	if c.Metrics == nil {
		return 0, 0, fmt.Errorf("metrics client not available")
	}
	pm, err := c.Metrics.MetricsV1beta1().PodMetricses(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return 0, 0, err
	}

	var cpu, mem int64
	for _, container := range pm.Containers {
		cpu += container.Usage.Cpu().MilliValue()
		mem += container.Usage.Memory().Value() / (1024 * 1024)
	}
	return cpu, mem, nil
}

// StatusOf extracts the HTTP status code and human message from an API error.
// Errors that carry no API status report code 0 with their plain message.
func StatusOf(err error) (int32, string) {
	var se apierrors.APIStatus
	if errors.As(err, &se) {
		return se.Status().Code, se.Status().Message
	}
	return 0, err.Error()
}
