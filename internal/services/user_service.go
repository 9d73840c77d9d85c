package services

import (
	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"
)

// UserService is the admin-facing account surface. Self-service signup
// and login live in AuthService.
type UserService interface {
	Get(id string) (*dto.UserResponse, error)
	List(req *dto.ListUsersRequest) ([]dto.UserResponse, int64, error)
	UpdateStatus(id string, status models.UserStatus) (*dto.UserResponse, error)
	Delete(id, actorID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) List(req *dto.ListUsersRequest) ([]dto.UserResponse, int64, error) {
	offset := (req.Page - 1) * req.PageSize
	users, err := s.userRepo.FindAll(req.PageSize, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateStatus(id string, status models.UserStatus) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateStatus(id, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Suspension invalidates every session.
	if status == models.UserStatusSuspended {
		if err := s.userRepo.DeleteUserRefreshTokens(id); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	user.Status = status
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(id, actorID string) error {
	if id == actorID {
		return apperrors.NewConflictError("user", "You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
