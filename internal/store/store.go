// Package store holds per-conversation state behind fine-grained locking.
package store

import (
	"hash/fnv"
	"sync"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
	"github.com/honeynet-labs/agentic-honeypot/pkg/metrics"
)

const shardCount = 32

// Store is the only shared mutable resource in the pipeline. It exclusively
// owns all ConversationState instances; callers only ever see snapshots.
// State is sharded by conversation ID so requests for distinct conversations
// do not block one another, while updates to a single conversation are
// serialized by its shard lock. Conversations live until process
// termination; there is no eviction.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu            sync.Mutex
	conversations map[string]*model.ConversationState
}

// New creates an empty store.
func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].conversations = make(map[string]*model.ConversationState)
	}
	return s
}

func (s *Store) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.shards[h.Sum32()%shardCount]
}

// GetOrCreate returns a snapshot of the conversation, creating it lazily on
// first reference.
func (s *Store) GetOrCreate(id string) model.Snapshot {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.getOrCreateLocked(id).Snapshot()
}

// Apply runs mutate inside the conversation's critical section and returns a
// snapshot of the resulting state. The mutation sees a consistent view and
// can never lose an update to the append-only turn sequence or the
// intelligence sets. Mutations must not block on I/O.
func (s *Store) Apply(id string, mutate func(*model.ConversationState)) model.Snapshot {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	state := sh.getOrCreateLocked(id)
	mutate(state)
	return state.Snapshot()
}

func (sh *shard) getOrCreateLocked(id string) *model.ConversationState {
	state, ok := sh.conversations[id]
	if !ok {
		state = model.NewConversationState(id)
		sh.conversations[id] = state
		metrics.ConversationsActive.Inc()
	}
	return state
}

// Len reports how many conversations are held.
func (s *Store) Len() int {
	total := 0
	for i := range s.shards {
		s.shards[i].mu.Lock()
		total += len(s.shards[i].conversations)
		s.shards[i].mu.Unlock()
	}
	return total
}
