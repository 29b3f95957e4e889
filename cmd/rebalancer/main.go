// Command rebalancer drives the operator-sequenced three-phase migration
// that runs whenever a new node joins the cluster.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"kvset/internal/cluster"
	"kvset/internal/discovery"
	"kvset/internal/logging"
)

func main() {
	var (
		nodes       = flag.String("nodes", "", "comma-separated list of current node addresses")
		k8sService  = flag.String("k8s-service", "", "namespace/name of an EndpointSlice-backed Service to discover initial membership from")
		kubeconfig  = flag.String("kubeconfig", "", "path to a kubeconfig file, used only with --k8s-service")
		servicePort = flag.Int("k8s-port", 4000, "protocol port for addresses discovered via --k8s-service")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log := logging.New(*logLevel)

	addresses, err := initialMembership(*nodes, *k8sService, *kubeconfig, *servicePort)
	if err != nil {
		log.WithError(err).Fatal("failed to determine initial membership")
	}
	if len(addresses) == 0 {
		fmt.Fprintln(os.Stderr, "rebalancer: no initial membership; pass --nodes or --k8s-service")
		os.Exit(1)
	}
	log.WithField("nodes", addresses).Info("rebalancer starting with initial membership")

	members := append([]string(nil), addresses...)
	rb := cluster.NewRebalancer(members, log, 0)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("new node address: ")
		if !scanner.Scan() {
			return
		}
		newNode := strings.TrimSpace(scanner.Text())
		if newNode == "" {
			continue
		}

		oldOwners := append([]string(nil), members...)
		rb.AddNode(newNode)

		if err := rb.Rebalance(newNode, oldOwners); err != nil {
			log.WithError(err).WithField("node", newNode).Error("rebalance aborted")
			continue
		}
		members = append(members, newNode)
	}
}

func initialMembership(nodesFlag, k8sService, kubeconfig string, port int) ([]string, error) {
	if k8sService != "" {
		parts := strings.SplitN(k8sService, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("--k8s-service must be namespace/name, got %q", k8sService)
		}
		lister, err := discovery.NewK8sLister(kubeconfig, parts[0], parts[1], port)
		if err != nil {
			return nil, err
		}
		return lister.ListNodes(context.Background())
	}
	return splitAddresses(nodesFlag), nil
}

func splitAddresses(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
