package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/notify"
	"github.com/jobportal/backend/storage"
)

// memStore is an in-memory ChatStore
type memStore struct {
	mu       sync.Mutex
	seq      int
	convs    map[string]models.Conversation
	msgs     map[string][]models.Message
	contexts map[string]models.ChatContext
}

func newMemStore() *memStore {
	return &memStore{
		convs:    make(map[string]models.Conversation),
		msgs:     make(map[string][]models.Message),
		contexts: make(map[string]models.ChatContext),
	}
}

func (s *memStore) next() int {
	s.seq++
	return s.seq
}

func (s *memStore) CreateConversation(_ context.Context, userID string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next()
	conv := models.Conversation{
		ID:        fmt.Sprintf("conv-%d", n),
		UserID:    userID,
		Status:    models.ConversationStatusPending,
		CreatedAt: time.Unix(int64(n), 0),
	}
	s.convs[conv.ID] = conv
	return &conv, nil
}

func (s *memStore) GetConversation(_ context.Context, id string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &conv, nil
}

func (s *memStore) list(filter func(models.Conversation) bool, withCounts bool) []models.Conversation {
	out := []models.Conversation{}
	for _, c := range s.convs {
		if filter(c) {
			if withCounts {
				c.MessageCount = len(s.msgs[c.ID])
			}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) ListConversations(_ context.Context, userID string) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(c models.Conversation) bool { return c.UserID == userID }, false), nil
}

func (s *memStore) ListAllConversations(_ context.Context) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(models.Conversation) bool { return true }, true), nil
}

func (s *memStore) UpdateConversationStatus(_ context.Context, id string, status models.ConversationStatus) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.convs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	conv.Status = status
	s.convs[id] = conv
	return &conv, nil
}

func (s *memStore) DeleteConversation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.convs, id)
	delete(s.msgs, id)
	delete(s.contexts, id)
	return nil
}

func (s *memStore) AppendMessage(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[msg.ConversationID]; !ok {
		return fmt.Errorf("conversation %s does not exist", msg.ConversationID)
	}
	n := s.next()
	msg.ID = fmt.Sprintf("msg-%d", n)
	msg.CreatedAt = time.Unix(int64(n), 0)
	s.msgs[msg.ConversationID] = append(s.msgs[msg.ConversationID], *msg)
	return nil
}

func (s *memStore) ListMessages(_ context.Context, id string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.msgs[id]...), nil
}

func (s *memStore) CountMessages(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs[id]), nil
}

func (s *memStore) GetContext(_ context.Context, id string) (models.ChatContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contexts[id]; ok {
		return c, nil
	}
	return models.NewChatContext(id), nil
}

func (s *memStore) SaveContext(_ context.Context, c models.ChatContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[c.ConversationID] = c
	return nil
}

func (s *memStore) Close() error { return nil }

// fakeJobs is an in-memory JobLookup that records its calls
type fakeJobs struct {
	mu         sync.Mutex
	industries []models.Industry
	skills     []models.Skill
	jobs       []models.Job
	calls      []string
	err        error
}

func (f *fakeJobs) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeJobs) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeJobs) filter(match func(models.Job) bool) []models.Job {
	var out []models.Job
	for _, j := range f.jobs {
		if match(j) {
			out = append(out, j)
		}
	}
	return out
}

func (f *fakeJobs) ByIndustry(_ context.Context, industryID int64) ([]models.Job, error) {
	if err := f.record(fmt.Sprintf("ByIndustry(%d)", industryID)); err != nil {
		return nil, err
	}
	return f.filter(func(j models.Job) bool { return j.IndustryID != nil && *j.IndustryID == industryID }), nil
}

func (f *fakeJobs) ByLocation(_ context.Context, location string) ([]models.Job, error) {
	if err := f.record(fmt.Sprintf("ByLocation(%s)", location)); err != nil {
		return nil, err
	}
	return f.filter(func(j models.Job) bool { return strings.EqualFold(j.Location, location) }), nil
}

func (f *fakeJobs) ByIndustryAndLocation(_ context.Context, industryID int64, location string) ([]models.Job, error) {
	if err := f.record(fmt.Sprintf("ByIndustryAndLocation(%d,%s)", industryID, location)); err != nil {
		return nil, err
	}
	return f.filter(func(j models.Job) bool {
		return j.IndustryID != nil && *j.IndustryID == industryID && strings.EqualFold(j.Location, location)
	}), nil
}

func (f *fakeJobs) FallbackSearch(_ context.Context, text string) ([]models.Job, error) {
	if err := f.record(fmt.Sprintf("FallbackSearch(%s)", text)); err != nil {
		return nil, err
	}
	needle := strings.ToLower(text)
	return f.filter(func(j models.Job) bool { return strings.Contains(strings.ToLower(j.Title), needle) }), nil
}

func (f *fakeJobs) Industries(context.Context) ([]models.Industry, error) {
	if err := f.record("Industries"); err != nil {
		return nil, err
	}
	return f.industries, nil
}

func (f *fakeJobs) Skills(context.Context) ([]models.Skill, error) {
	if err := f.record("Skills"); err != nil {
		return nil, err
	}
	return f.skills, nil
}

// searchCalls drops the reference data loads
func searchCalls(calls []string) []string {
	var out []string
	for _, c := range calls {
		if c != "Industries" && c != "Skills" {
			out = append(out, c)
		}
	}
	return out
}

const (
	industryIT     int64 = 1
	industryDesign int64 = 2
)

// newFakeJobs returns 12 IT jobs (ids 1..12, alternating Hà Nội and TP.HCM)
// and 3 design jobs (ids 101..103 in Đà Nẵng)
func newFakeJobs() *fakeJobs {
	it, design := industryIT, industryDesign
	f := &fakeJobs{
		industries: []models.Industry{
			{ID: industryIT, Name: "Công nghệ thông tin"},
			{ID: industryDesign, Name: "Thiết kế"},
			{ID: 5, Name: "Giáo dục"},
		},
		skills: []models.Skill{{ID: 1, Name: "Photoshop", IndustryID: industryDesign}},
	}
	for i := int64(1); i <= 12; i++ {
		loc := "Hà Nội"
		if i%2 == 0 {
			loc = "TP.HCM"
		}
		f.jobs = append(f.jobs, models.Job{
			ID:           i,
			Title:        fmt.Sprintf("Go Engineer %d", i),
			Location:     loc,
			IndustryID:   &it,
			PostedByName: "Acme",
			JobIMG:       fmt.Sprintf("gs://images/%d.png", i),
		})
	}
	for i := int64(101); i <= 103; i++ {
		f.jobs = append(f.jobs, models.Job{
			ID:           i,
			Title:        fmt.Sprintf("UI Designer %d", i),
			Location:     "Đà Nẵng",
			IndustryID:   &design,
			PostedByName: "Studio",
		})
	}
	return f
}

// fakeGenerator is a scripted PhraseGenerator
type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (g *fakeGenerator) ComposeReply(_ context.Context, _ string, summaries []string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return fmt.Sprintf("%s (%d)", g.reply, len(summaries)), nil
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// fakeNotifier records sent events
type fakeNotifier struct {
	mu   sync.Mutex
	sent map[string][]notify.Event
}

func (n *fakeNotifier) Send(userID string, evt notify.Event) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = make(map[string][]notify.Event)
	}
	n.sent[userID] = append(n.sent[userID], evt)
	return true
}

// prefixImages marks resolved images so tests can tell them apart
type prefixImages struct{}

func (prefixImages) ResolveImage(_ context.Context, ref string) string {
	return "https://signed/" + strings.TrimPrefix(ref, "gs://")
}
