package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

type userRepository struct {
	clock   calendar.Clock
	byID    *xsync.MapOf[string, user.User]
	byEmail *xsync.MapOf[string, string] // lower-cased email -> id
	byCode  *xsync.MapOf[string, string] // employee code -> id
}

func NewUserRepository(clock calendar.Clock) user.UserRepository {
	return &userRepository{
		clock:   clock,
		byID:    xsync.NewMapOf[string, user.User](),
		byEmail: xsync.NewMapOf[string, string](),
		byCode:  xsync.NewMapOf[string, string](),
	}
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.byID.Load(id)
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	id, ok := r.byEmail.Load(strings.ToLower(email))
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// Create implements user.UserRepository. Email and employee code are
// reserved atomically before the user becomes visible.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if newUser.ID == "" {
		newUser.ID = uuid.Must(uuid.NewV7()).String()
	}
	if newUser.CreatedAt.IsZero() {
		newUser.CreatedAt = r.clock.Now()
	}

	emailKey := strings.ToLower(newUser.Email)
	if _, loaded := r.byEmail.LoadOrStore(emailKey, newUser.ID); loaded {
		return user.User{}, user.ErrDuplicateUser
	}
	if _, loaded := r.byCode.LoadOrStore(newUser.EmployeeCode, newUser.ID); loaded {
		r.byEmail.Delete(emailKey)
		return user.User{}, user.ErrDuplicateEmployeeCode
	}

	r.byID.Store(newUser.ID, newUser)
	return newUser, nil
}

// ListEmployees implements user.UserRepository.
func (r *userRepository) ListEmployees(ctx context.Context) ([]user.Profile, error) {
	var out []user.Profile
	r.byID.Range(func(_ string, u user.User) bool {
		if u.Role == user.RoleEmployee {
			out = append(out, u.Profile())
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListProfiles implements user.UserRepository.
func (r *userRepository) ListProfiles(ctx context.Context, ids []string) (map[string]user.Profile, error) {
	out := make(map[string]user.Profile, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		if u, ok := r.byID.Load(id); ok {
			out[id] = u.Profile()
		}
	}
	return out, nil
}
