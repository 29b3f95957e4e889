// Package discovery provides an optional Kubernetes-backed membership
// source for the rebalancer tool, as an alternative to a hand-typed
// --nodes address list. It is never used by the storage node itself.
package discovery

import (
	"context"
	"fmt"
	"sort"

	discoveryv1 "k8s.io/api/discovery/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// K8sLister resolves a Service's ready endpoints to node addresses via its
// EndpointSlices, so the rebalancer can point at a Kubernetes Service name
// instead of an explicit, manually maintained address list.
type K8sLister struct {
	clientset kubernetes.Interface
	namespace string
	service   string
	port      int
}

// NewK8sLister builds a lister from the default kubeconfig resolution
// (in-cluster config if running as a pod, otherwise KUBECONFIG / ~/.kube).
func NewK8sLister(kubeconfigPath, namespace, service string, port int) (*K8sLister, error) {
	cfg, err := loadRestConfig(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("discovery: load kubeconfig: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("discovery: build clientset: %w", err)
	}
	return &K8sLister{clientset: clientset, namespace: namespace, service: service, port: port}, nil
}

func loadRestConfig(kubeconfigPath string) (*rest.Config, error) {
	if kubeconfigPath != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	}
	if cfg, err := rest.InClusterConfig(); err == nil {
		return cfg, nil
	}
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}

// ListNodes returns "address:port" for every ready endpoint backing the
// configured Service's EndpointSlices, sorted for determinism so repeated
// calls against unchanged membership build an identical ring.
func (l *K8sLister) ListNodes(ctx context.Context) ([]string, error) {
	slices, err := l.clientset.DiscoveryV1().EndpointSlices(l.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("kubernetes.io/service-name=%s", l.service),
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: list endpoint slices: %w", err)
	}

	var addresses []string
	for _, slice := range slices.Items {
		for _, endpoint := range slice.Endpoints {
			if !endpointReady(endpoint) {
				continue
			}
			for _, addr := range endpoint.Addresses {
				addresses = append(addresses, fmt.Sprintf("%s:%d", addr, l.port))
			}
		}
	}
	sort.Strings(addresses)
	return addresses, nil
}

func endpointReady(endpoint discoveryv1.Endpoint) bool {
	return endpoint.Conditions.Ready == nil || *endpoint.Conditions.Ready
}
