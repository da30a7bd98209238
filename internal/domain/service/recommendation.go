package service

import (
	"context"
	"sort"
	"strings"

	"github.com/unimeet/unimeet-api/internal/domain/dto"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type recommendationClubStorage interface {
	GetAll(ctx context.Context) ([]entity.Club, error)
}

type recommendationMemberStorage interface {
	GetClubIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

type recommendationAttendeeStorage interface {
	GetEventIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type recommendationEventStorage interface {
	GetPublicByClubIDs(ctx context.Context, clubIDs []uint) ([]entity.Event, error)
	GetPublicExcludingClubs(ctx context.Context, clubIDs []uint) ([]entity.Event, error)
}

// recommendationLimit bounds the scorer's result before the caller-supplied
// limit is applied.
const recommendationLimit = 20

// similarityThresholds is tried in order; the first tier with at least one
// strictly-exceeding candidate wins.
var similarityThresholds = []float64{0.15, 0.10, 0.05, 0.01}

// Field weights of the club similarity score.
const (
	nameWeight        = 0.2
	descriptionWeight = 0.3
	purposeWeight     = 0.5
)

type RecommendationService struct {
	clubStorage     recommendationClubStorage
	memberStorage   recommendationMemberStorage
	attendeeStorage recommendationAttendeeStorage
	eventStorage    recommendationEventStorage
}

func tokenize(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case ' ', ',', '.', '!', '?':
			return true
		}
		return false
	})

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// jaccard is the word-set similarity of two texts: intersection size divided
// by union size. Empty texts contribute zero.
func jaccard(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	setA := tokenize(a)
	setB := tokenize(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// clubSimilarity is the weighted sum of the per-field Jaccard coefficients.
func clubSimilarity(a, b entity.Club) float64 {
	score := jaccard(a.Name, b.Name) * nameWeight
	score += jaccard(a.Description, b.Description) * descriptionWeight
	score += jaccard(a.Purpose, b.Purpose) * purposeWeight
	return score
}

func NewRecommendationService(
	clubStorage recommendationClubStorage,
	memberStorage recommendationMemberStorage,
	attendeeStorage recommendationAttendeeStorage,
	eventStorage recommendationEventStorage,
) *RecommendationService {
	return &RecommendationService{
		clubStorage:     clubStorage,
		memberStorage:   memberStorage,
		attendeeStorage: attendeeStorage,
		eventStorage:    eventStorage,
	}
}

// GetRecommendations scores every club the user does not follow against the
// clubs they do follow and returns up to limit public non-cancelled events
// from the most similar clubs, most recently scheduled first.
//
// A user following no clubs gets an empty list: there is no signal to
// recommend from, which is a valid terminal state rather than an error.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uint, limit int) ([]dto.RecommendedEvent, error) {
	followedIDs, err := s.memberStorage.GetClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followedIDs) == 0 {
		return []dto.RecommendedEvent{}, nil
	}

	clubs, err := s.clubStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	followedSet := make(map[uint]struct{}, len(followedIDs))
	for _, id := range followedIDs {
		followedSet[id] = struct{}{}
	}

	var followed []entity.Club
	for _, c := range clubs {
		if _, ok := followedSet[c.ID]; ok {
			followed = append(followed, c)
		}
	}

	// Best observed similarity per non-followed club.
	scores := make(map[uint]float64)
	for _, fc := range followed {
		for _, c := range clubs {
			if _, ok := followedSet[c.ID]; ok {
				continue
			}
			similarity := clubSimilarity(fc, c)
			if best, ok := scores[c.ID]; !ok || similarity > best {
				scores[c.ID] = similarity
			}
		}
	}

	candidates := selectCandidates(scores)
	if len(candidates) == 0 {
		// No similarity signal at any tier: consider every non-followed club.
		for id := range scores {
			candidates = append(candidates, id)
		}
	}

	events, err := s.eventStorage.GetPublicByClubIDs(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		// Candidate clubs have nothing scheduled; widen to all public events
		// outside the followed set.
		events, err = s.eventStorage.GetPublicExcludingClubs(ctx, followedIDs)
		if err != nil {
			return nil, err
		}
	}

	// Most recently scheduled first.
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartAt.After(events[j].StartAt)
	})
	if len(events) > recommendationLimit {
		events = events[:recommendationLimit]
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return s.decorate(ctx, userID, events, clubs, followedSet, scores)
}

// selectCandidates picks the club set at the first threshold tier with at
// least one strictly-exceeding score.
func selectCandidates(scores map[uint]float64) []uint {
	for _, threshold := range similarityThresholds {
		var ids []uint
		for id, score := range scores {
			if score > threshold {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return nil
}

func (s *RecommendationService) decorate(
	ctx context.Context,
	userID uint,
	events []entity.Event,
	clubs []entity.Club,
	followedSet map[uint]struct{},
	scores map[uint]float64,
) ([]dto.RecommendedEvent, error) {
	clubNames := make(map[uint]string, len(clubs))
	for _, c := range clubs {
		clubNames[c.ID] = c.Name
	}

	joinedIDs, err := s.attendeeStorage.GetEventIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	joinedSet := make(map[uint]struct{}, len(joinedIDs))
	for _, id := range joinedIDs {
		joinedSet[id] = struct{}{}
	}

	result := make([]dto.RecommendedEvent, 0, len(events))
	for _, e := range events {
		attendees, err := s.attendeeStorage.CountByEvent(ctx, e.ID)
		if err != nil {
			return nil, err
		}

		_, isMember := followedSet[e.ClubID]
		_, isJoined := joinedSet[e.ID]

		result = append(result, dto.RecommendedEvent{
			Event: dto.NewEventFromEntity(e, clubNames[e.ClubID], attendees, isMember, isJoined),
			Score: scores[e.ClubID],
			// Static labels: reasons are not derived from the score.
			Reason:        "similar_clubs",
			ReasonDetails: "Events from clubs similar to the ones you follow",
		})
	}
	return result, nil
}
