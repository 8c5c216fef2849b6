package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/backend/keywords"
	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/storage"
)

type testEnv struct {
	agent *ChatAgent
	store *memStore
	jobs  *fakeJobs
	gen   *fakeGenerator
}

func newTestEnv() *testEnv {
	store := newMemStore()
	jobs := newFakeJobs()
	gen := &fakeGenerator{reply: "Có job cho bạn"}
	return &testEnv{
		agent: NewChatAgent(store, jobs, NewComposer(gen), prefixImages{}),
		store: store,
		jobs:  jobs,
		gen:   gen,
	}
}

func (e *testEnv) send(t *testing.T, convID, msg string) *SendMessageOutput {
	t.Helper()
	out, err := e.agent.SendMessage(context.Background(), SendMessageInput{
		ConversationID: convID,
		UserID:         "user-1",
		Message:        msg,
	})
	require.NoError(t, err)
	return out
}

func suggestionIDs(s []models.JobSuggestion) []int64 {
	ids := make([]int64, 0, len(s))
	for _, j := range s {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestSendMessage_IndustryAndLocation(t *testing.T) {
	env := newTestEnv()

	out := env.send(t, "", "tìm job IT ở Hà Nội")

	assert.NotEmpty(t, out.ConversationID)
	assert.Equal(t, keywords.IntentSearch, out.Intent)
	assert.Equal(t, []string{"ByIndustryAndLocation(1,Hà Nội)"}, searchCalls(env.jobs.Calls()))
	assert.Equal(t, []int64{1, 3, 5, 7, 9}, suggestionIDs(out.Jobs))
	assert.Equal(t, "Có job cho bạn (5)", out.Reply)
	assert.Equal(t, "https://signed/images/1.png", out.Jobs[0].JobIMG)

	chatCtx, err := env.store.GetContext(context.Background(), out.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, chatCtx.LastIndustryID)
	assert.Equal(t, industryIT, *chatCtx.LastIndustryID)
	assert.Equal(t, "Hà Nội", chatCtx.LastLocation)
}

func TestSendMessage_ThanksAndGoodbyeSkipLookup(t *testing.T) {
	env := newTestEnv()

	out := env.send(t, "", "cảm ơn nhiều")
	assert.Equal(t, keywords.IntentThanks, out.Intent)
	assert.Equal(t, ReplyThanks, out.Reply)
	assert.Empty(t, out.Jobs)

	out = env.send(t, out.ConversationID, "bye nhé")
	assert.Equal(t, ReplyGoodbye, out.Reply)
	assert.Empty(t, out.Jobs)

	assert.Empty(t, env.jobs.Calls())
	assert.Zero(t, env.gen.Calls())

	chatCtx, err := env.store.GetContext(context.Background(), out.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "bye nhé", chatCtx.LastMessage)
}

func TestSendMessage_ShowMorePaginates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := env.send(t, "", "IT developer")
	convID := first.ConversationID
	require.Len(t, first.Jobs, 5)

	chatCtx, err := env.store.GetContext(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, 5, chatCtx.LastShownIndex)

	second := env.send(t, convID, "xem thêm")
	assert.Equal(t, keywords.IntentShowMore, second.Intent)
	assert.Equal(t, ReplyShowMorePage, second.Reply)
	assert.Equal(t, []int64{6, 7, 8, 9, 10}, suggestionIDs(second.Jobs))

	chatCtx, err = env.store.GetContext(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, 10, chatCtx.LastShownIndex)

	third := env.send(t, convID, "còn job nào nữa không")
	assert.Equal(t, []int64{11, 12}, suggestionIDs(third.Jobs))

	all := append(append(suggestionIDs(first.Jobs), suggestionIDs(second.Jobs)...), suggestionIDs(third.Jobs)...)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, all)

	chatCtx, err = env.store.GetContext(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, 12, chatCtx.LastShownIndex)
	assert.Equal(t, all, chatCtx.ShownJobIDs)

	for i := 0; i < 2; i++ {
		done := env.send(t, convID, "xem thêm")
		assert.Equal(t, ReplyShowMoreDone, done.Reply)
		assert.Empty(t, done.Jobs)
	}
}

func TestSendMessage_IndustryChangeResetsCursor(t *testing.T) {
	env := newTestEnv()

	first := env.send(t, "", "IT developer")
	convID := first.ConversationID
	env.send(t, convID, "xem thêm")

	out := env.send(t, convID, "xem thêm job thiết kế")
	assert.Equal(t, keywords.IntentShowMore, out.Intent)
	assert.Equal(t, []int64{101, 102, 103}, suggestionIDs(out.Jobs))

	chatCtx, err := env.store.GetContext(context.Background(), convID)
	require.NoError(t, err)
	require.NotNil(t, chatCtx.LastIndustryID)
	assert.Equal(t, industryDesign, *chatCtx.LastIndustryID)
	assert.Equal(t, 3, chatCtx.LastShownIndex)
	assert.Equal(t, []int64{101, 102, 103}, chatCtx.ShownJobIDs)
}

func TestSendMessage_LocationCarriesOver(t *testing.T) {
	env := newTestEnv()

	first := env.send(t, "", "IT developer")
	out := env.send(t, first.ConversationID, "ở hcm thì sao")

	calls := searchCalls(env.jobs.Calls())
	assert.Equal(t, "ByIndustryAndLocation(1,TP.HCM)", calls[len(calls)-1])
	assert.Equal(t, []int64{2, 4, 6, 8, 10}, suggestionIDs(out.Jobs))

	// location alone never moves the industry cursor
	chatCtx, err := env.store.GetContext(context.Background(), first.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, 5, chatCtx.LastShownIndex)
}

func TestSendMessage_LocationOnly(t *testing.T) {
	env := newTestEnv()

	out := env.send(t, "", "việc làm đà nẵng")
	assert.Equal(t, []string{"ByLocation(Đà Nẵng)"}, searchCalls(env.jobs.Calls()))
	assert.Equal(t, []int64{101, 102, 103}, suggestionIDs(out.Jobs))
}

func TestSendMessage_NoMatch(t *testing.T) {
	env := newTestEnv()

	out := env.send(t, "", "qwerty zzz")
	assert.Equal(t, []string{"FallbackSearch(qwerty zzz)"}, searchCalls(env.jobs.Calls()))
	assert.Equal(t, ReplyNoMatch, out.Reply)
	assert.Empty(t, out.Jobs)
	assert.Zero(t, env.gen.Calls())
}

func TestSendMessage_GreetingWithoutResults(t *testing.T) {
	env := newTestEnv()

	out := env.send(t, "", "xin chào")
	assert.Equal(t, keywords.IntentGreeting, out.Intent)
	assert.Equal(t, ReplyGreeting, out.Reply)
	assert.Empty(t, out.Jobs)
}

func TestSendMessage_ShowMoreWithoutIndustry(t *testing.T) {
	env := newTestEnv()

	out := env.send(t, "", "xem thêm")
	assert.Equal(t, ReplyShowMoreAsk, out.Reply)
	assert.Empty(t, out.Jobs)
	assert.Empty(t, searchCalls(env.jobs.Calls()))
}

func TestSendMessage_AppendsTwoMessagesPerCall(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	conv, err := env.agent.CreateConversation(ctx, "user-1")
	require.NoError(t, err)

	messages := []string{"hello", "IT developer", "xem thêm", "xem thêm", "xem thêm", "xem thêm", "qwerty", "cảm ơn", "tạm biệt"}
	for i, msg := range messages {
		env.send(t, conv.ID, msg)
		count, err := env.store.CountMessages(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, 2*(i+1), count, msg)
	}

	msgs, err := env.store.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	for i, m := range msgs {
		if i%2 == 0 {
			assert.Equal(t, models.SenderUser, m.Sender)
		} else {
			assert.Equal(t, models.SenderAssistant, m.Sender)
		}
	}
}

func TestSendMessage_LookupErrorPropagates(t *testing.T) {
	env := newTestEnv()
	lookupErr := errors.New("db down")
	env.jobs.err = lookupErr

	_, err := env.agent.SendMessage(context.Background(), SendMessageInput{UserID: "user-1", Message: "IT developer"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lookupErr))
}

func TestSendMessage_PhraseErrorFallsBack(t *testing.T) {
	env := newTestEnv()
	env.gen.err = errors.New("quota exceeded")

	out := env.send(t, "", "IT developer")
	assert.Equal(t, ReplyFallback, out.Reply)
	assert.Len(t, out.Jobs, 5)
}

func TestSendMessage_UnknownConversation(t *testing.T) {
	env := newTestEnv()

	_, err := env.agent.SendMessage(context.Background(), SendMessageInput{ConversationID: "missing", UserID: "user-1", Message: "hi"})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestSendMessage_OtherUsersConversation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	conv, err := env.agent.CreateConversation(ctx, "owner")
	require.NoError(t, err)

	_, err = env.agent.SendMessage(ctx, SendMessageInput{ConversationID: conv.ID, UserID: "intruder", Message: "hi"})
	assert.True(t, errors.Is(err, ErrForbidden))

	count, err := env.store.CountMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSendMessage_EmptyMessage(t *testing.T) {
	env := newTestEnv()
	_, err := env.agent.SendMessage(context.Background(), SendMessageInput{UserID: "user-1", Message: "   "})
	assert.Error(t, err)
}

func TestGetMessages_DecodesSuggestions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	out := env.send(t, "", "IT developer")

	msgs, err := env.agent.GetMessages(ctx, out.ConversationID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "IT developer", msgs[0].Content)
	assert.Empty(t, msgs[0].Jobs)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, suggestionIDs(msgs[1].Jobs))
	assert.Equal(t, "https://signed/images/1.png", msgs[1].Jobs[0].JobIMG)

	// metadata keeps the raw reference
	raw, err := env.store.ListMessages(ctx, out.ConversationID)
	require.NoError(t, err)
	assert.Contains(t, raw[1].Metadata, "gs://images/1.png")
}

func TestGetMessages_BadMetadataIsSkipped(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	conv, err := env.agent.CreateConversation(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, env.store.AppendMessage(ctx, &models.Message{
		ConversationID: conv.ID,
		Sender:         models.SenderAssistant,
		Content:        "broken",
		Metadata:       "{not json",
	}))

	msgs, err := env.agent.GetMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "broken", msgs[0].Content)
	assert.Nil(t, msgs[0].Jobs)
}

func TestDeleteConversation_ThenGetMessagesNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	out := env.send(t, "", "IT developer")
	require.NoError(t, env.agent.DeleteConversation(ctx, out.ConversationID))

	_, err := env.agent.GetMessages(ctx, out.ConversationID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	assert.True(t, errors.Is(env.agent.DeleteConversation(ctx, out.ConversationID), storage.ErrNotFound))

	chatCtx, err := env.store.GetContext(ctx, out.ConversationID)
	require.NoError(t, err)
	assert.False(t, chatCtx.HasIndustry())
}

func TestListConversations(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.agent.CreateConversation(ctx, "user-1")
	require.NoError(t, err)
	second, err := env.agent.CreateConversation(ctx, "user-1")
	require.NoError(t, err)
	_, err = env.agent.CreateConversation(ctx, "user-2")
	require.NoError(t, err)

	convs, err := env.agent.ListConversations(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, second.ID, convs[0].ID)
	assert.Equal(t, first.ID, convs[1].ID)
}

func TestSendMessage_ConcurrentShowMoreNeverRepeats(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := env.send(t, "", "IT developer")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen []int64
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := env.agent.SendMessage(ctx, SendMessageInput{ConversationID: first.ConversationID, UserID: "user-1", Message: "xem thêm"})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen = append(seen, suggestionIDs(out.Jobs)...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []int64{6, 7, 8, 9, 10, 11, 12}, seen)
	assert.Zero(t, env.agent.locks.size())

	count, err := env.store.CountMessages(ctx, first.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, 2+2*8, count)
}

// hookedStore runs onGet once, the first time a conversation is loaded
type hookedStore struct {
	*memStore
	once  sync.Once
	onGet func()
}

func (s *hookedStore) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	conv, err := s.memStore.GetConversation(ctx, id)
	s.once.Do(s.onGet)
	return conv, err
}

func TestSendMessage_DeleteDuringTurnWaitsForTurn(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	conv, err := env.store.CreateConversation(ctx, "user-1")
	require.NoError(t, err)

	store := &hookedStore{memStore: env.store}
	chatAgent := NewChatAgent(store, env.jobs, NewComposer(env.gen), prefixImages{})

	deleted := make(chan error, 1)
	store.onGet = func() {
		go func() { deleted <- chatAgent.DeleteConversation(ctx, conv.ID) }()
		select {
		case err := <-deleted:
			deleted <- err
		case <-time.After(50 * time.Millisecond):
		}
	}

	out, err := chatAgent.SendMessage(ctx, SendMessageInput{ConversationID: conv.ID, UserID: "user-1", Message: "IT developer"})
	require.NoError(t, err)
	assert.Equal(t, conv.ID, out.ConversationID)

	require.NoError(t, <-deleted)

	_, err = chatAgent.GetMessages(ctx, conv.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	env.store.mu.Lock()
	_, orphaned := env.store.msgs[conv.ID]
	env.store.mu.Unlock()
	assert.False(t, orphaned)
	assert.Zero(t, chatAgent.locks.size())
}
