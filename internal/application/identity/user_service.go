package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/identity"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Actor identifies the authenticated caller of a service operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create creates a new user. Only callers allowed to manage users may do this.
func (s *UserService) Create(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error) {
	if !identity.Can(actor.Role, identity.OpManageUsers) {
		return nil, shared.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Username %q is taken", req.Username))
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Email %q is already registered", req.Email))
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.FullName != "" {
		if err := user.SetFullName(req.FullName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, actor Actor, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	if !identity.Can(actor.Role, identity.OpManageUsers) {
		return nil, shared.ErrForbidden
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a user's profile, role, or active state
func (s *UserService) Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if !identity.Can(actor.Role, identity.OpManageUsers) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if err := user.SetFullName(*req.FullName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			if err := user.Activate(); err != nil {
				return nil, err
			}
		} else {
			if actor.UserID == user.ID {
				return nil, shared.NewDomainError("INVALID_INPUT", "Cannot deactivate your own account")
			}
			if err := user.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes the caller's own password
func (s *UserService) ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !identity.Can(actor.Role, identity.OpManageUsers) {
		return shared.ErrForbidden
	}
	if actor.UserID == id {
		return shared.NewDomainError("INVALID_INPUT", "Cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
