package converter

import (
	"clinic-management/internal/delivery/dto"
	"clinic-management/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// SessionToCurrentUser converts a Session to CurrentUserResponse DTO
func SessionToCurrentUser(session *entity.Session) *dto.CurrentUserResponse {
	if session == nil {
		return nil
	}

	return &dto.CurrentUserResponse{
		SessionID:  session.ID,
		Username:   session.Username,
		Role:       string(session.Role),
		LoggedInAt: session.LoggedInAt,
	}
}

// DoctorsToResponses converts doctor accounts to DoctorResponse DTOs
func DoctorsToResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i, user := range users {
		responses[i] = dto.DoctorResponse{
			ID:       user.ID,
			Username: user.Username,
		}
	}
	return responses
}
