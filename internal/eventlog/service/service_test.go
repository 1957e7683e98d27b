package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evdomain "github.com/DominikBanach/Bono/internal/audit/domain"
	ddomain "github.com/DominikBanach/Bono/internal/definitions/domain"
	"github.com/DominikBanach/Bono/internal/eventlog/domain"
)

type fakeResolver struct {
	defs map[string]ddomain.Definition
	err  error
}

func (f fakeResolver) GetByName(ctx context.Context, name string) (ddomain.Definition, error) {
	if f.err != nil {
		return ddomain.Definition{}, f.err
	}
	d, ok := f.defs[name]
	if !ok {
		return ddomain.Definition{}, ddomain.ErrNotFound
	}
	return d, nil
}

type fakeRepo struct {
	mu    sync.Mutex
	names map[int64]string
	rows  []domain.Occurrence
}

func (f *fakeRepo) Create(ctx context.Context, definitionID int64, ts time.Time) (domain.Occurrence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := domain.Occurrence{ID: int64(len(f.rows) + 1), DefinitionID: definitionID, Timestamp: ts}
	f.rows = append(f.rows, o)
	return o, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.View, 0, len(f.rows))
	for _, o := range f.rows {
		out = append(out, domain.View{ID: o.ID, EventType: f.names[o.DefinitionID], Timestamp: o.Timestamp})
	}
	return out, nil
}

type capturePublisher struct{ events []evdomain.Event }

func (c *capturePublisher) Publish(ctx context.Context, e evdomain.Event) error {
	c.events = append(c.events, e)
	return nil
}

var _ domain.Service = (*Service)(nil)

func newSleepService() (*Service, *fakeRepo) {
	r := &fakeRepo{names: map[int64]string{7: "SLEEP"}}
	res := fakeResolver{defs: map[string]ddomain.Definition{"SLEEP": {ID: 7, Name: "SLEEP"}}}
	return New(r, res), r
}

func TestLogEvent_DefaultsToNowUTC(t *testing.T) {
	s, _ := newSleepService()

	before := time.Now()
	v, err := s.LogEvent(context.Background(), "SLEEP", nil)
	require.NoError(t, err)
	assert.Equal(t, "SLEEP", v.EventType)
	assert.Equal(t, time.UTC, v.Timestamp.Location())
	assert.WithinDuration(t, before, v.Timestamp, 2*time.Second)
}

func TestLogEvent_UsesInjectedClock(t *testing.T) {
	s, _ := newSleepService()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	v, err := s.LogEvent(context.Background(), "sleep", nil)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(v.Timestamp))
}

func TestLogEvent_NaiveTimestampStaysUTC(t *testing.T) {
	s, _ := newSleepService()
	ts, err := domain.ParseTimestamp("2024-01-01T00:00:00")
	require.NoError(t, err)

	v, err := s.LogEvent(context.Background(), "sleep", &ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00+00:00", domain.FormatTimestamp(v.Timestamp))
}

func TestLogEvent_OffsetTimestampKeepsInstant(t *testing.T) {
	s, _ := newSleepService()
	ts := time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("", 2*3600))

	v, err := s.LogEvent(context.Background(), "sleep", &ts)
	require.NoError(t, err)
	assert.True(t, ts.Equal(v.Timestamp))
	assert.Equal(t, time.UTC, v.Timestamp.Location())
}

func TestLogEvent_UnknownDefinition(t *testing.T) {
	s, r := newSleepService()
	pub := &capturePublisher{}
	s.SetPublisher(pub)

	_, err := s.LogEvent(context.Background(), "run", nil)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "RUN", nf.Name)
	assert.Equal(t, "There is no RUN event definition.", err.Error())
	assert.Empty(t, r.rows)
	require.Len(t, pub.events, 1)
	assert.Equal(t, evdomain.TypeEventNotFound, pub.events[0].Type)
}

func TestLogEvent_ResolverFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	s := New(&fakeRepo{}, fakeResolver{err: boom})
	_, err := s.LogEvent(context.Background(), "sleep", nil)
	assert.ErrorIs(t, err, boom)
}

func TestLogEvent_CaseInsensitiveResolvesSameDefinition(t *testing.T) {
	s, r := newSleepService()
	for _, in := range []string{"Sleep", "SLEEP", "sleep"} {
		v, err := s.LogEvent(context.Background(), in, nil)
		require.NoError(t, err, in)
		assert.Equal(t, "SLEEP", v.EventType)
	}
	for _, o := range r.rows {
		assert.Equal(t, int64(7), o.DefinitionID)
	}
}

func TestListAll_TwoOccurrences(t *testing.T) {
	s, _ := newSleepService()
	ctx := context.Background()
	a, err := s.LogEvent(ctx, "sleep", nil)
	require.NoError(t, err)
	b, err := s.LogEvent(ctx, "SLEEP", nil)
	require.NoError(t, err)

	views, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.NotEqual(t, a.ID, b.ID)
	for _, v := range views {
		assert.Equal(t, "SLEEP", v.EventType)
	}
}
