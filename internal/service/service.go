package service

import (
	"context"
	"time"

	"agrirent-backend/internal/domain"
)

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Username string
	Password string
	Fullname string
	Phone    string
	Address  string
}

// LoginResult carries the outcome of a login attempt. When the user has no
// role yet, Token is a short-lived set-role token and RoleNeeded is true.
type LoginResult struct {
	Token      string
	Role       domain.Role
	RoleNeeded bool
	Username   string
}

type AuthService interface {
	// Register creates a user with an unset role and returns a set-role
	// token for picking one.
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// SetRole assigns the role exactly once and returns an access token.
	SetRole(ctx context.Context, userID, username string, role domain.Role) (string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// VehicleInput is the payload for creating a vehicle. RentPrice is the raw
// decimal string from the client; parsing failures are InvalidArgument.
type VehicleInput struct {
	Name      string
	Model     string
	Type      string
	RentPrice string
	Location  domain.Location
	Image1URL string
	Image2URL string
}

// VehiclePatch is a partial update; nil fields are left unchanged.
type VehiclePatch struct {
	Name         *string
	Model        *string
	Type         *string
	RentPrice    *string
	Availability *bool
	Location     *domain.Location
	Image1URL    *string
	Image2URL    *string
}

type VehicleService interface {
	Create(ctx context.Context, owner domain.Actor, in VehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Vehicle, error)
	// List returns the caller's vehicles for owners and all available
	// vehicles for renters.
	List(ctx context.Context, actor domain.Actor) ([]domain.Vehicle, error)
	Update(ctx context.Context, owner domain.Actor, id string, patch VehiclePatch) (*domain.Vehicle, error)
	Delete(ctx context.Context, owner domain.Actor, id string) error
}

type BookingService interface {
	Create(ctx context.Context, renter domain.Actor, vehicleID string, start, end time.Time) (*domain.Booking, error)
	Transition(ctx context.Context, actor domain.Actor, bookingID string, target domain.BookingStatus) (*domain.Booking, error)
	// List returns the caller's bookings for renters and the bookings on
	// the caller's vehicles for owners.
	List(ctx context.Context, actor domain.Actor) ([]domain.BookingDetail, error)
}
