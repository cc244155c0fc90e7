//go:build integration

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-timetable/backend/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6380"
	}
	c, err := NewClient(&config.RedisConfig{Enabled: true, Addr: addr}, zap.NewNop())
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_GetSetBytes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := "timetable:test:" + uuid.NewString()

	if _, ok, err := c.GetBytes(ctx, key); err != nil || ok {
		t.Fatalf("miss expected, got ok=%v err=%v", ok, err)
	}
	if err := c.SetBytes(ctx, key, []byte("body"), time.Minute); err != nil {
		t.Fatal(err)
	}
	b, ok, err := c.GetBytes(ctx, key)
	if err != nil || !ok || string(b) != "body" {
		t.Errorf("GetBytes = %q, %v, %v", b, ok, err)
	}
}

func TestClient_Revision(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	scope := "course:" + uuid.NewString()

	if rev, err := c.Revision(ctx, scope); err != nil || rev != 0 {
		t.Fatalf("fresh scope: rev=%d err=%v", rev, err)
	}
	for i := 0; i < 2; i++ {
		if err := c.BumpRevision(ctx, scope); err != nil {
			t.Fatal(err)
		}
	}
	if rev, err := c.Revision(ctx, scope); err != nil || rev != 2 {
		t.Errorf("rev=%d err=%v, want 2", rev, err)
	}
}

func TestClient_CheckRateLimit(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := "timetable:rate:test:" + uuid.NewString()

	for i := 0; i < 3; i++ {
		allowed, err := c.CheckRateLimit(ctx, key, 3, time.Minute)
		if err != nil || !allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i, allowed, err)
		}
	}
	allowed, err := c.CheckRateLimit(ctx, key, 3, time.Minute)
	if err != nil || allowed {
		t.Errorf("4th request: allowed=%v err=%v, want rejected", allowed, err)
	}
}
