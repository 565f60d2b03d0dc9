package loader

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

func TestFactoryMemoizesLoadersPerEntity(t *testing.T) {
	factory := newTestFactory(newFakeStore(nil))

	checkpointLoader := factory.Loader("Checkpoint")
	if factory.Loader("Checkpoint") != checkpointLoader {
		t.Fatalf("expected the same loader for the same entity")
	}
	if factory.Loader("Vote") == checkpointLoader {
		t.Fatalf("expected a distinct loader for another entity")
	}
	if checkpointLoader.Entity() != "Checkpoint" {
		t.Fatalf("unexpected loader entity %q", checkpointLoader.Entity())
	}
}

func TestFactoryMemoizesLoadersConcurrently(t *testing.T) {
	factory := newTestFactory(newFakeStore(nil))

	const workers = 32
	loaders := make([]*Loader, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loaders[i] = factory.Loader("Proposal")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if loaders[i] != loaders[0] {
			t.Fatalf("worker %d received a different loader", i)
		}
	}
}

func TestFactoryKeepsEntitiesInSeparateBatches(t *testing.T) {
	s := newFakeStore(checkpointRows())
	factory := newTestFactory(s)
	ctx := context.Background()

	checkpointThunk := factory.Loader("Checkpoint").LoadThunk(ctx, "1")
	voteThunk := factory.Loader("Vote").LoadThunk(ctx, "1")

	checkpoint, err := checkpointThunk()
	if err != nil || checkpoint["contract_address"] != "0x01" {
		t.Fatalf("unexpected checkpoint: %#v (%v)", checkpoint, err)
	}
	vote, err := voteThunk()
	if err != nil || vote["choice"] != "FOR" {
		t.Fatalf("unexpected vote: %#v (%v)", vote, err)
	}

	if s.callCount() != 2 {
		t.Fatalf("expected 2 independent queries, got %d", s.callCount())
	}

	var tables []string
	for i := 0; i < 2; i++ {
		query := s.call(i).query
		switch {
		case strings.Contains(query, "`checkpoints`"):
			tables = append(tables, "checkpoints")
		case strings.Contains(query, "`votes`"):
			tables = append(tables, "votes")
		}
	}
	if len(tables) != 2 || tables[0] == tables[1] {
		t.Fatalf("expected one query per table, got %v", tables)
	}
}

func TestFactoriesDoNotShareCaches(t *testing.T) {
	s := newFakeStore(checkpointRows())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := newTestFactory(s).Loader("Checkpoint").Load(ctx, "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if s.callCount() != 2 {
		t.Fatalf("expected each factory to query on its own, got %d queries", s.callCount())
	}
}

func TestNewFactoryDefaultsLogger(t *testing.T) {
	factory := NewFactory(Config{Store: newFakeStore(nil), Dialect: store.DialectMySQL})
	if factory.config.Logger == nil {
		t.Fatalf("expected default logger")
	}
}
