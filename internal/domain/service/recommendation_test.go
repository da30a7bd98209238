package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type fakeClubStore struct {
	clubs []entity.Club
}

func (f *fakeClubStore) GetAll(ctx context.Context) ([]entity.Club, error) {
	return f.clubs, nil
}

type fakeMemberStore struct {
	followed []uint
}

func (f *fakeMemberStore) GetClubIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	return f.followed, nil
}

type fakeAttendeeStore struct {
	joined []uint
	counts map[uint]int64
}

func (f *fakeAttendeeStore) GetEventIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	return f.joined, nil
}

func (f *fakeAttendeeStore) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	return f.counts[eventID], nil
}

type fakeEventStore struct {
	events []entity.Event
}

func (f *fakeEventStore) GetPublicByClubIDs(ctx context.Context, clubIDs []uint) ([]entity.Event, error) {
	set := make(map[uint]struct{}, len(clubIDs))
	for _, id := range clubIDs {
		set[id] = struct{}{}
	}

	var out []entity.Event
	for _, e := range f.events {
		if _, ok := set[e.ClubID]; ok && e.IsPublic && !e.IsCancelled {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) GetPublicExcludingClubs(ctx context.Context, clubIDs []uint) ([]entity.Event, error) {
	excluded := make(map[uint]struct{}, len(clubIDs))
	for _, id := range clubIDs {
		excluded[id] = struct{}{}
	}

	var out []entity.Event
	for _, e := range f.events {
		if _, ok := excluded[e.ClubID]; !ok && e.IsPublic && !e.IsCancelled {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestRecommendationService(clubs []entity.Club, followed []uint, events []entity.Event) *RecommendationService {
	return NewRecommendationService(
		&fakeClubStore{clubs: clubs},
		&fakeMemberStore{followed: followed},
		&fakeAttendeeStore{counts: map[uint]int64{}},
		&fakeEventStore{events: events},
	)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "build robots together", b: "build robots together", want: 1},
		{name: "disjoint", a: "chess openings", b: "pottery painting", want: 0},
		{name: "empty left", a: "", b: "anything", want: 0},
		{name: "one of five", a: "robotics competition team", b: "robotics workshop series", want: 0.2},
		{name: "case and punctuation insensitive", a: "Robotics, competitions!", b: "robotics competitions", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, jaccard(tt.a, tt.b), 1e-9)
			assert.Equal(t, jaccard(tt.a, tt.b), jaccard(tt.b, tt.a), "similarity must be symmetric")
		})
	}
}

func TestClubSimilarityWeights(t *testing.T) {
	a := entity.Club{Name: "Robotics Club", Description: "we build robots", Purpose: "learn robotics"}

	assert.InDelta(t, 1.0, clubSimilarity(a, a), 1e-9, "identical clubs score the full weight sum")

	b := entity.Club{Name: "Robotics Club", Description: "film photography", Purpose: "darkroom technique"}
	assert.InDelta(t, nameWeight, clubSimilarity(a, b), 1e-9, "name-only overlap scores the name weight")
}

func TestRecommendationsEmptyFollowSet(t *testing.T) {
	svc := newTestRecommendationService(
		[]entity.Club{{ID: 1, Name: "Chess"}},
		nil,
		[]entity.Event{{ID: 1, ClubID: 1, IsPublic: true}},
	)

	got, err := svc.GetRecommendations(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A followed robotics club must surface a similar club's public events at the
// 0.10 threshold tier, most recently scheduled first.
func TestRecommendationsRoboticsScenario(t *testing.T) {
	clubs := []entity.Club{
		{ID: 1, Name: "Robotics Club", Description: "robotics competition team", Purpose: "build robotics skills together"},
		{ID: 2, Name: "Automation Society", Description: "robotics workshop series", Purpose: "teach robotics fundamentals"},
		{ID: 3, Name: "Pottery Circle", Description: "clay and glaze", Purpose: "handmade ceramics"},
	}

	base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	events := []entity.Event{
		{ID: 10, ClubID: 2, Title: "Workshop A", StartAt: base, IsPublic: true},
		{ID: 11, ClubID: 2, Title: "Workshop B", StartAt: base.Add(48 * time.Hour), IsPublic: true},
		{ID: 12, ClubID: 2, Title: "Cancelled", StartAt: base.Add(24 * time.Hour), IsPublic: true, IsCancelled: true},
		{ID: 13, ClubID: 2, Title: "Members only", StartAt: base.Add(72 * time.Hour), IsPublic: false},
		{ID: 14, ClubID: 3, Title: "Glazing night", StartAt: base, IsPublic: true},
	}

	svc := newTestRecommendationService(clubs, []uint{1}, events)

	got, err := svc.GetRecommendations(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, got, 2, "only the similar club's public non-cancelled events qualify")

	// description 1/5 * 0.3 + purpose 1/6 * 0.5
	wantScore := 0.2*descriptionWeight + (1.0/6.0)*purposeWeight
	assert.Greater(t, wantScore, 0.10)

	assert.Equal(t, uint(11), got[0].EventID, "later start comes first")
	assert.Equal(t, uint(10), got[1].EventID)
	for _, r := range got {
		assert.InDelta(t, wantScore, r.Score, 1e-9)
	}
}

func TestRecommendationsThresholdTiers(t *testing.T) {
	// Weak overlap: purpose 1 word of union 8 -> 1/8 * 0.5 = 0.0625, which
	// only clears the 0.05 tier.
	clubs := []entity.Club{
		{ID: 1, Name: "Hiking Crew", Description: "weekend trail hikes", Purpose: "explore mountain trails around campus weekly"},
		{ID: 2, Name: "Photography Guild", Description: "portrait sessions", Purpose: "capture campus life"},
		{ID: 3, Name: "Debate Union", Description: "argument practice", Purpose: "competitive public speaking"},
	}
	events := []entity.Event{
		{ID: 20, ClubID: 2, Title: "Photo walk", StartAt: time.Now().UTC(), IsPublic: true},
		{ID: 21, ClubID: 3, Title: "Mock debate", StartAt: time.Now().UTC(), IsPublic: true},
	}

	svc := newTestRecommendationService(clubs, []uint{1}, events)

	got, err := svc.GetRecommendations(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, got, 1, "the zero-score club must not ride along once a tier matches")
	assert.Equal(t, uint(20), got[0].EventID)
	assert.InDelta(t, 0.0625, got[0].Score, 1e-9)
}

func TestRecommendationsFallbackToAllClubs(t *testing.T) {
	// No tier matches: every non-followed club becomes a candidate.
	clubs := []entity.Club{
		{ID: 1, Name: "Chess", Description: "openings endgames", Purpose: "tournament preparation"},
		{ID: 2, Name: "Pottery", Description: "clay work", Purpose: "handmade ceramics"},
	}
	events := []entity.Event{
		{ID: 30, ClubID: 2, Title: "Wheel throwing", StartAt: time.Now().UTC(), IsPublic: true},
	}

	svc := newTestRecommendationService(clubs, []uint{1}, events)

	got, err := svc.GetRecommendations(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(30), got[0].EventID)
	assert.Zero(t, got[0].Score)
}

func TestRecommendationsFallbackToAnyPublicEvent(t *testing.T) {
	// The similar club has nothing scheduled, so the result widens to public
	// events of any non-followed club.
	clubs := []entity.Club{
		{ID: 1, Name: "Robotics Club", Description: "robotics competition team", Purpose: "build robotics skills together"},
		{ID: 2, Name: "Automation Society", Description: "robotics workshop series", Purpose: "teach robotics fundamentals"},
		{ID: 3, Name: "Pottery Circle", Description: "clay and glaze", Purpose: "handmade ceramics"},
	}
	events := []entity.Event{
		{ID: 40, ClubID: 3, Title: "Glazing night", StartAt: time.Now().UTC(), IsPublic: true},
	}

	svc := newTestRecommendationService(clubs, []uint{1}, events)

	got, err := svc.GetRecommendations(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(40), got[0].EventID)
}

func TestRecommendationsLimit(t *testing.T) {
	clubs := []entity.Club{
		{ID: 1, Name: "Robotics Club", Description: "robotics competition team", Purpose: "build robotics skills together"},
		{ID: 2, Name: "Automation Society", Description: "robotics workshop series", Purpose: "teach robotics fundamentals"},
	}

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	var events []entity.Event
	for i := 0; i < 25; i++ {
		events = append(events, entity.Event{
			ID:       uint(100 + i),
			ClubID:   2,
			Title:    "Session",
			StartAt:  base.Add(time.Duration(i) * time.Hour),
			IsPublic: true,
		})
	}

	svc := newTestRecommendationService(clubs, []uint{1}, events)

	got, err := svc.GetRecommendations(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Len(t, got, recommendationLimit)

	got, err = svc.GetRecommendations(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
