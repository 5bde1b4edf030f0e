package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
)

func newRepo(t *testing.T) (*RedisLoginAttemptRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisLoginAttemptRepo(client), mr
}

func TestRedisLoginAttemptRepo_RegisterAndCount(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := repo.RegisterFailure(ctx, "k1", time.Minute)
		if err != nil {
			t.Fatalf("RegisterFailure: %v", err)
		}
		if n != want {
			t.Fatalf("want %d got %d", want, n)
		}
	}

	n, err := repo.Failures(ctx, "k1")
	if err != nil {
		t.Fatalf("Failures err: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 got %d", n)
	}
}

func TestRedisLoginAttemptRepo_KeyAbsent(t *testing.T) {
	repo, _ := newRepo(t)

	n, err := repo.Failures(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Failures err: %v", err)
	}
	if n != 0 {
		t.Fatalf("absent key must count as zero, got %d", n)
	}
}

func TestRedisLoginAttemptRepo_WindowExpires(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if _, err := repo.RegisterFailure(ctx, "k2", time.Minute); err != nil {
		t.Fatalf("RegisterFailure: %v", err)
	}
	if ttl := mr.TTL(failureKeyPrefix + "k2"); ttl != time.Minute {
		t.Fatalf("want ttl 1m got %v", ttl)
	}

	// later failures must not push the window forward
	mr.FastForward(30 * time.Second)
	if _, err := repo.RegisterFailure(ctx, "k2", time.Minute); err != nil {
		t.Fatalf("RegisterFailure: %v", err)
	}
	if ttl := mr.TTL(failureKeyPrefix + "k2"); ttl != 30*time.Second {
		t.Fatalf("want ttl 30s got %v", ttl)
	}

	mr.FastForward(31 * time.Second)
	n, err := repo.Failures(ctx, "k2")
	if err != nil {
		t.Fatalf("Failures err: %v", err)
	}
	if n != 0 {
		t.Fatalf("window should have expired, got %d", n)
	}
}

func TestRedisLoginAttemptRepo_Reset(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, _ = repo.RegisterFailure(ctx, "k3", time.Minute)
	if err := repo.Reset(ctx, "k3"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	n, _ := repo.Failures(ctx, "k3")
	if n != 0 {
		t.Fatalf("want 0 after reset got %d", n)
	}
}

func TestRedisLoginAttemptRepo_Unavailable(t *testing.T) {
	repo, mr := newRepo(t)
	mr.Close()

	if _, err := repo.Failures(context.Background(), "k4"); err == nil {
		t.Fatal("expected error with redis down")
	}
}
