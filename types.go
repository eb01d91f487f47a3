package labelkit

// UserType distinguishes the two sides of the platform.
type UserType string

const (
	// UserTypeArtist submits content.
	UserTypeArtist UserType = "ARTIST"
	// UserTypeLabel discovers and rates content.
	UserTypeLabel UserType = "LABEL"
)

// Identity is the authenticated user as issued by the remote auth
// endpoint. It is immutable for the lifetime of a session and replaced
// wholesale on re-login.
type Identity struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	UserType  UserType `json:"userType"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register. The optional
// fields depend on UserType: artist accounts carry ArtistName/Genre,
// label accounts LabelName/CompanyName.
type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	UserType    UserType `json:"userType"`
	ArtistName  string   `json:"artistName,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	LabelName   string   `json:"labelName,omitempty"`
	CompanyName string   `json:"companyName,omitempty"`
}

// AuthResponse is returned by both auth endpoints on success.
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         Identity `json:"user"`
}
