package main

import "testing"

func TestSplitAddresses(t *testing.T) {
	got := splitAddresses("127.0.0.1:3000,127.0.0.1:3001")
	want := []string{"127.0.0.1:3000", "127.0.0.1:3001"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestInitialMembershipFromFlag(t *testing.T) {
	addresses, err := initialMembership("127.0.0.1:3000,127.0.0.1:3001", "", "", 0)
	if err != nil {
		t.Fatalf("initialMembership: %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("got %v, want 2 addresses", addresses)
	}
}

func TestInitialMembershipRejectsMalformedK8sService(t *testing.T) {
	if _, err := initialMembership("", "not-namespace-slash-name", "", 4000); err == nil {
		t.Fatal("expected error for malformed --k8s-service value")
	}
}
