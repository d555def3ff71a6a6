package k8s

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
)

func TestListPods(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewSimpleClientset(
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "db-0", Namespace: "backend"}},
	)
	client := &Client{Clientset: clientset}

	pods, err := client.ListPods(ctx, "default")
	if err != nil {
		t.Fatalf("ListPods failed: %v", err)
	}
	if len(pods) != 1 {
		t.Errorf("Expected 1 pod, got %d", len(pods))
	}
	if pods[0].Name != "web-0" {
		t.Errorf("Expected pod name web-0, got %s", pods[0].Name)
	}
}

func TestListPodsAllNamespaces(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewSimpleClientset(
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "db-0", Namespace: "backend"}},
	)
	client := &Client{Clientset: clientset}

	pods, err := client.ListPods(ctx, "")
	if err != nil {
		t.Fatalf("ListPods failed: %v", err)
	}
	if len(pods) != 2 {
		t.Errorf("Expected 2 pods, got %d", len(pods))
	}
}

func TestListNamespaces(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewSimpleClientset(
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "kube-system"}},
	)
	client := &Client{Clientset: clientset}

	nss, err := client.ListNamespaces(ctx)
	if err != nil {
		t.Fatalf("ListNamespaces failed: %v", err)
	}
	if len(nss) != 2 {
		t.Errorf("Expected 2 namespaces, got %d", len(nss))
	}
}

func TestGetPod(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewSimpleClientset(&corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "app"}, {Name: "sidecar"}},
		},
	})
	client := &Client{Clientset: clientset}

	pod, err := client.GetPod(ctx, "default", "web-0")
	if err != nil {
		t.Fatalf("GetPod failed: %v", err)
	}
	if len(pod.Spec.Containers) != 2 {
		t.Errorf("Expected 2 containers, got %d", len(pod.Spec.Containers))
	}
}

func TestGetPodNotFound(t *testing.T) {
	ctx := context.Background()
	client := &Client{Clientset: fake.NewSimpleClientset()}

	_, err := client.GetPod(ctx, "default", "missing")
	if err == nil {
		t.Fatal("Expected not-found error")
	}
	if !apierrors.IsNotFound(err) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestGetPodUsageNoMetricsClient(t *testing.T) {
	ctx := context.Background()
	client := &Client{Metrics: nil}

	if _, _, err := client.GetPodUsage(ctx, "default", "web-0"); err == nil {
		t.Error("Expected error when metrics client is nil")
	}
}

func TestStatusOf(t *testing.T) {
	gr := schema.GroupResource{Resource: "pods"}
	err := apierrors.NewNotFound(gr, "web-0")

	code, msg := StatusOf(err)
	if code != 404 {
		t.Errorf("Expected code 404, got %d", code)
	}
	if msg == "" {
		t.Error("Expected non-empty message")
	}
}

func TestStatusOfPlainError(t *testing.T) {
	code, msg := StatusOf(context.DeadlineExceeded)
	if code != 0 {
		t.Errorf("Expected code 0 for non-API error, got %d", code)
	}
	if msg != context.DeadlineExceeded.Error() {
		t.Errorf("Expected plain message, got %s", msg)
	}
}
