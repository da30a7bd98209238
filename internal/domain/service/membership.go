package service

import (
	"context"
	"time"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type membershipStorage interface {
	Exists(ctx context.Context, userID, clubID uint) (bool, error)
	Create(ctx context.Context, member *entity.ClubMember) error
	Delete(ctx context.Context, userID, clubID uint) error
	GetClubIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

type membershipEventStorage interface {
	GetMembersOnlyIDs(ctx context.Context, clubID uint) ([]uint, error)
}

type membershipAttendeeStorage interface {
	DeleteByUserAndEvents(ctx context.Context, userID uint, eventIDs []uint) error
}

type MembershipService struct {
	memberStorage   membershipStorage
	eventStorage    membershipEventStorage
	attendeeStorage membershipAttendeeStorage
}

func NewMembershipService(
	memberStorage membershipStorage,
	eventStorage membershipEventStorage,
	attendeeStorage membershipAttendeeStorage,
) *MembershipService {
	return &MembershipService{
		memberStorage:   memberStorage,
		eventStorage:    eventStorage,
		attendeeStorage: attendeeStorage,
	}
}

// Follow makes the user a member of the club. Following a club twice is a
// no-op, not an error.
func (s *MembershipService) Follow(ctx context.Context, userID, clubID uint) error {
	exists, err := s.memberStorage.Exists(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.memberStorage.Create(ctx, &entity.ClubMember{
		UserID:   userID,
		ClubID:   clubID,
		JoinedAt: time.Now().UTC(),
	})
}

// Unfollow removes the membership and the user's attendance at the club's
// members-only events; attendance at its public events survives. Unfollowing
// a club the user never followed is a no-op.
func (s *MembershipService) Unfollow(ctx context.Context, userID, clubID uint) error {
	exists, err := s.memberStorage.Exists(ctx, userID, clubID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := s.memberStorage.Delete(ctx, userID, clubID); err != nil {
		return err
	}

	eventIDs, err := s.eventStorage.GetMembersOnlyIDs(ctx, clubID)
	if err != nil {
		return err
	}
	if len(eventIDs) == 0 {
		return nil
	}
	return s.attendeeStorage.DeleteByUserAndEvents(ctx, userID, eventIDs)
}

func (s *MembershipService) IsFollowing(ctx context.Context, userID, clubID uint) (bool, error) {
	return s.memberStorage.Exists(ctx, userID, clubID)
}

func (s *MembershipService) GetFollowedClubIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.memberStorage.GetClubIDsByUser(ctx, userID)
}
