package net_test

import (
	"context"
	"testing"

	pnet "villagevisits/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
	})

	t.Run("empty id returns same ctx", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when id empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}

func TestPrincipal(t *testing.T) {
	base := context.Background()

	if _, ok := pnet.PrincipalFrom(base); ok {
		t.Fatalf("expected no principal on bare ctx")
	}
	if ctx := pnet.WithPrincipal(base, pnet.Principal{}); ctx != base {
		t.Fatalf("zero principal should not change ctx")
	}

	p := pnet.Principal{UserID: "u1", Role: pnet.RoleResident, VillageID: "v1", ProfileID: "r1"}
	ctx := pnet.WithPrincipal(base, p)
	got, ok := pnet.PrincipalFrom(ctx)
	if !ok || got != p {
		t.Fatalf("PrincipalFrom got %+v ok=%v", got, ok)
	}
	if pnet.UserID(ctx) != "u1" {
		t.Fatalf("UserID got %q", pnet.UserID(ctx))
	}
}
