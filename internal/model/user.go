package model

// UserProfile is the session singleton: set on login or profile fetch,
// cleared on logout. Commerce metadata comes from the clinic's shop
// integration.
type UserProfile struct {
	ID          ID
	Email       string
	FirstName   string
	LastName    string
	Phone       string
	State       string
	TotalSpent  string
	OrdersCount int
	Tags        string
}

// UserProfileWire is the profile object inside the /auth/profile
// envelope. The profile endpoint is the one surface the backend serves
// in camelCase.
type UserProfileWire struct {
	ID          ID     `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	State       string `json:"state"`
	TotalSpent  string `json:"totalSpent"`
	OrdersCount int    `json:"ordersCount"`
	Tags        string `json:"tags"`
}

// ProfileEnvelope wraps GET /auth/profile responses.
type ProfileEnvelope struct {
	Profile UserProfileWire `json:"profile"`
}

func UserProfileFromWire(w UserProfileWire) UserProfile {
	return UserProfile{
		ID:          w.ID,
		Email:       w.Email,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Phone:       w.Phone,
		State:       w.State,
		TotalSpent:  w.TotalSpent,
		OrdersCount: w.OrdersCount,
		Tags:        w.Tags,
	}
}

func (p UserProfile) ToWire() UserProfileWire {
	return UserProfileWire{
		ID:          p.ID,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Phone:       p.Phone,
		State:       p.State,
		TotalSpent:  p.TotalSpent,
		OrdersCount: p.OrdersCount,
		Tags:        p.Tags,
	}
}

// UpdateProfileRequest is the editable subset of the profile.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,min=7,max=20"`
	State     string `json:"state,omitempty"`
}
