package dialect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func mockFactory(t *testing.T, calls *atomic.Int32) Factory {
	t.Helper()
	return func(ctx context.Context, creds Credentials) (*sql.DB, error) {
		calls.Add(1)
		db, _, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New() error: %v", err)
		}
		return db, nil
	}
}

func TestGetCreatesOncePerKey(t *testing.T) {
	cache := NewConnCache()
	creds := Credentials{User: "sys", Password: "exasol", URL: "jdbc:exa:localhost:8563"}
	var calls atomic.Int32
	factory := mockFactory(t, &calls)

	first, err := cache.Get(context.Background(), creds, factory)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	second, err := cache.Get(context.Background(), creds, factory)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if first != second {
		t.Error("repeated Get() returned different handles")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("factory invoked %d times, want 1", got)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", cache.Len())
	}
}

func TestGetDistinctCredentials(t *testing.T) {
	cache := NewConnCache()
	var calls atomic.Int32
	factory := mockFactory(t, &calls)

	a, err := cache.Get(context.Background(), Credentials{User: "a", URL: "jdbc:exa:host:8563"}, factory)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	b, err := cache.Get(context.Background(), Credentials{User: "b", URL: "jdbc:exa:host:8563"}, factory)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if a == b {
		t.Error("different credentials share a handle")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("factory invoked %d times, want 2", got)
	}
}

func TestGetConcurrentFirstAccess(t *testing.T) {
	cache := NewConnCache()
	creds := Credentials{User: "sys", URL: "jdbc:exa:localhost:8563"}

	var calls atomic.Int32
	factory := func(ctx context.Context, creds Credentials) (*sql.DB, error) {
		calls.Add(1)
		// Widen the race window so losing goroutines really do wait.
		time.Sleep(10 * time.Millisecond)
		db, _, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	const n = 32
	handles := make([]*sql.DB, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := cache.Get(context.Background(), creds, factory)
			if err != nil {
				t.Errorf("Get() error: %v", err)
				return
			}
			handles[i] = db
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("factory invoked %d times under concurrent access, want 1", got)
	}
	for i := 1; i < n; i++ {
		if handles[i] != handles[0] {
			t.Fatalf("goroutine %d observed a different handle", i)
		}
	}
}

func TestGetDoesNotCacheFailure(t *testing.T) {
	cache := NewConnCache()
	creds := Credentials{User: "sys", URL: "jdbc:exa:localhost:8563"}

	var calls atomic.Int32
	factoryErr := errors.New("connection refused")
	factory := func(ctx context.Context, creds Credentials) (*sql.DB, error) {
		if calls.Add(1) == 1 {
			return nil, fmt.Errorf("opening connection: %w", factoryErr)
		}
		db, _, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	_, err := cache.Get(context.Background(), creds, factory)
	if !errors.Is(err, factoryErr) {
		t.Fatalf("Get() error = %v, want wrapped factory error", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("failed creation left %d cache entries", cache.Len())
	}

	db, err := cache.Get(context.Background(), creds, factory)
	if err != nil {
		t.Fatalf("retry Get() error: %v", err)
	}
	if db == nil {
		t.Fatal("retry Get() returned nil handle")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("factory invoked %d times, want 2", got)
	}
}
