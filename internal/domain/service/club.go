package service

import (
	"context"

	"github.com/unimeet/unimeet-api/internal/domain/dto"
	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

type clubStorage interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id uint) (*entity.Club, error)
	GetAll(ctx context.Context) ([]entity.Club, error)
	GetMany(ctx context.Context, ids []uint) ([]entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Delete(ctx context.Context, id uint) error
}

type clubMembershipReader interface {
	GetClubIDsByUser(ctx context.Context, userID uint) ([]uint, error)
}

type ClubService struct {
	clubStorage   clubStorage
	memberStorage clubMembershipReader
}

func NewClubService(clubStorage clubStorage, memberStorage clubMembershipReader) *ClubService {
	return &ClubService{
		clubStorage:   clubStorage,
		memberStorage: memberStorage,
	}
}

func (s *ClubService) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	return s.clubStorage.Create(ctx, club)
}

func (s *ClubService) Get(ctx context.Context, id uint) (*entity.Club, error) {
	return s.clubStorage.Get(ctx, id)
}

func (s *ClubService) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	return s.clubStorage.Update(ctx, club)
}

// Delete removes the club together with its memberships.
func (s *ClubService) Delete(ctx context.Context, id uint) error {
	return s.clubStorage.Delete(ctx, id)
}

// GetAll returns every club, name and id only, ordered by name.
func (s *ClubService) GetAll(ctx context.Context) ([]dto.Club, error) {
	clubs, err := s.clubStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.Club, 0, len(clubs))
	for _, c := range clubs {
		result = append(result, dto.NewClubFromEntity(c))
	}
	return result, nil
}

// GetAllWithFollowing marks each club with whether the user follows it.
func (s *ClubService) GetAllWithFollowing(ctx context.Context, userID uint) ([]dto.ClubWithFollow, error) {
	clubs, err := s.clubStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	followedIDs, err := s.memberStorage.GetClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	followed := make(map[uint]struct{}, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}

	result := make([]dto.ClubWithFollow, 0, len(clubs))
	for _, c := range clubs {
		_, ok := followed[c.ID]
		result = append(result, dto.ClubWithFollow{
			ClubID:      c.ID,
			Name:        c.Name,
			IsFollowing: ok,
		})
	}
	return result, nil
}

func (s *ClubService) GetAllDetailed(ctx context.Context) ([]dto.ClubDetailed, error) {
	clubs, err := s.clubStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ClubDetailed, 0, len(clubs))
	for _, c := range clubs {
		result = append(result, dto.NewClubDetailedFromEntity(c))
	}
	return result, nil
}

// GetJoined lists the clubs the user follows.
func (s *ClubService) GetJoined(ctx context.Context, userID uint) ([]dto.Club, error) {
	ids, err := s.memberStorage.GetClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []dto.Club{}, nil
	}

	clubs, err := s.clubStorage.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.Club, 0, len(clubs))
	for _, c := range clubs {
		result = append(result, dto.NewClubFromEntity(c))
	}
	return result, nil
}

// GetProfile returns the public club page, manager name resolved.
func (s *ClubService) GetProfile(ctx context.Context, id uint) (*dto.ClubProfile, error) {
	club, err := s.clubStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := dto.NewClubProfileFromEntity(*club)
	return &profile, nil
}

// GetNamesByID resolves club names for event decoration.
func (s *ClubService) GetNamesByID(ctx context.Context, ids []uint) (map[uint]string, error) {
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	clubs, err := s.clubStorage.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(clubs))
	for _, c := range clubs {
		names[c.ID] = c.Name
	}
	return names, nil
}
