package orderid_test

import (
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/orderid"
)

var reCode = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestNextFormat(t *testing.T) {
	g := orderid.New(func(string) (bool, error) { return false, nil })
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := g.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !reCode.MatchString(id) {
			t.Fatalf("bad id format: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id in 200 draws: %s", id)
		}
		seen[id] = true
	}
}

func TestNextRetriesOnCollision(t *testing.T) {
	calls := 0
	g := orderid.New(func(string) (bool, error) {
		calls++
		return calls <= 3, nil // first three draws collide
	})
	id, err := g.Next()
	if err != nil {
		t.Fatal(err)
	}
	if id == "" || calls != 4 {
		t.Fatalf("want success on 4th attempt, got id=%q calls=%d", id, calls)
	}
}

func TestNextExhausted(t *testing.T) {
	calls := 0
	g := orderid.New(func(string) (bool, error) {
		calls++
		return true, nil // everything collides
	})
	_, err := g.Next()
	if !errors.Is(err, orderid.ErrExhausted) {
		t.Fatalf("want ErrExhausted, got %v", err)
	}
	if calls != orderid.DefaultMaxAttempts {
		t.Fatalf("want %d attempts, got %d", orderid.DefaultMaxAttempts, calls)
	}
}

func TestNextLookupError(t *testing.T) {
	boom := errors.New("db down")
	g := orderid.New(func(string) (bool, error) { return false, boom })
	if _, err := g.Next(); !errors.Is(err, boom) {
		t.Fatalf("want wrapped lookup error, got %v", err)
	}
}
