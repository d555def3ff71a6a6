package ui

import (
	"time"

	"github.com/podview/podview-cli/pkg/config"
	"github.com/podview/podview-cli/pkg/k8s"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

// TestConfig returns a config suitable for testing. The refresh interval is
// long enough that the poller never fires on its own mid-test.
func TestConfig() *config.Config {
	return &config.Config{
		RefreshInterval: config.Duration(time.Hour),
		LogTailLines:    100,
	}
}

func namespaceFixture(name string) *corev1.Namespace {
	return &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}
}

func podFixture(namespace, name string, containers ...string) *corev1.Pod {
	specs := make([]corev1.Container, 0, len(containers))
	statuses := make([]corev1.ContainerStatus, 0, len(containers))
	for _, c := range containers {
		specs = append(specs, corev1.Container{Name: c, Image: c + ":latest"})
		statuses = append(statuses, corev1.ContainerStatus{Name: c, Ready: true})
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec:       corev1.PodSpec{Containers: specs},
		Status: corev1.PodStatus{
			Phase:             corev1.PodRunning,
			ContainerStatuses: statuses,
		},
	}
}

// NewFakePodClient creates a k8s.Client backed by a fake clientset holding
// the given objects.
func NewFakePodClient(objects ...runtime.Object) *k8s.Client {
	return &k8s.Client{Clientset: fake.NewSimpleClientset(objects...)}
}
