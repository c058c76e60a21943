package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeynet-labs/agentic-honeypot/internal/model"
)

func TestGetOrCreateIsLazy(t *testing.T) {
	s := New()
	require.Zero(t, s.Len())

	snap := s.GetOrCreate("conv-1")
	require.Equal(t, "conv-1", snap.ID)
	require.Zero(t, snap.TurnCount)
	require.False(t, snap.ScamDetected)
	require.Equal(t, 1, s.Len())

	// Second call returns the same conversation.
	s.GetOrCreate("conv-1")
	require.Equal(t, 1, s.Len())
}

func TestApplyCreatesAndMutates(t *testing.T) {
	s := New()

	snap := s.Apply("conv-1", func(st *model.ConversationState) {
		st.ScamDetected = true
		st.Append(model.NewTurn(model.RoleScammer, "send money"))
	})

	require.True(t, snap.ScamDetected)
	require.Equal(t, 1, snap.TurnCount)

	again := s.GetOrCreate("conv-1")
	require.True(t, again.ScamDetected)
	require.Equal(t, 1, again.TurnCount)
}

func TestSnapshotIsNotALiveReference(t *testing.T) {
	s := New()
	s.Apply("conv-1", func(st *model.ConversationState) {
		st.Append(model.NewTurn(model.RoleScammer, "original"))
		st.Intelligence.Merge(model.ExtractedIntelligence{BankAccounts: []string{"123456789"}})
	})

	snap := s.GetOrCreate("conv-1")
	snap.Turns[0].Content = "tampered"
	snap.Intelligence.BankAccounts[0] = "tampered"

	fresh := s.GetOrCreate("conv-1")
	require.Equal(t, "original", fresh.Turns[0].Content)
	require.Equal(t, "123456789", fresh.Intelligence.BankAccounts[0])
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	s := New()
	const n = 64

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s.Apply("conv-1", func(st *model.ConversationState) {
				st.Append(model.NewTurn(model.RoleScammer, fmt.Sprintf("msg %d", i)))
			})
		}(i)
	}
	wg.Wait()

	require.Equal(t, n, s.GetOrCreate("conv-1").TurnCount)
}

func TestDistinctConversationsAreIndependent(t *testing.T) {
	s := New()
	const conversations = 100

	var wg sync.WaitGroup
	wg.Add(conversations)
	for i := 0; i < conversations; i++ {
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("conv-%d", i)
			s.Apply(id, func(st *model.ConversationState) {
				st.Append(model.NewTurn(model.RoleScammer, "hello"))
			})
		}(i)
	}
	wg.Wait()

	require.Equal(t, conversations, s.Len())
	for i := 0; i < conversations; i++ {
		require.Equal(t, 1, s.GetOrCreate(fmt.Sprintf("conv-%d", i)).TurnCount)
	}
}

func TestIntelligenceMergeIsMonotone(t *testing.T) {
	s := New()

	first := s.Apply("conv-1", func(st *model.ConversationState) {
		st.Intelligence.Merge(model.ExtractedIntelligence{BankAccounts: []string{"111111111X", "123456789"}})
	})
	second := s.Apply("conv-1", func(st *model.ConversationState) {
		st.Intelligence.Merge(model.ExtractedIntelligence{
			BankAccounts: []string{"123456789"},
			UPIIDs:       []string{"a@paytm"},
		})
	})

	require.Subset(t, second.Intelligence.BankAccounts, first.Intelligence.BankAccounts)
	require.Equal(t, []string{"a@paytm"}, second.Intelligence.UPIIDs)
}
