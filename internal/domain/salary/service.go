package salary

import "context"

type ProfileService interface {
	// CreateProfile installs a new effective-dated profile, superseding
	// any currently active one for the employee in the same transaction.
	CreateProfile(ctx context.Context, companyID string, req CreateProfileRequest) (ProfileResponse, error)
	GetActiveProfile(ctx context.Context, employeeID, companyID string) (ProfileResponse, error)
	ListActiveProfiles(ctx context.Context, companyID string) ([]ProfileResponse, error)
	ListProfileHistory(ctx context.Context, employeeID, companyID string) ([]ProfileResponse, error)
}
