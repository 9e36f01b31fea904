package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
	name     string
	token    *string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
		name:     "Test User",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithToken pre-sets a session token, as if the user had logged in
func (b *UserBuilder) WithToken(token string) *UserBuilder {
	b.token = &token
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		Token:        b.token,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// UserData matches the user payload inside the response envelope
type UserData struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// UserEnvelope matches a user response
type UserEnvelope struct {
	Data   *UserData `json:"data"`
	Errors string    `json:"errors"`
}

// BoolEnvelope matches a confirmation response
type BoolEnvelope struct {
	Data   bool   `json:"data"`
	Errors string `json:"errors"`
}

// ContactData matches the contact payload inside the response envelope
type ContactData struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ContactEnvelope matches a contact response
type ContactEnvelope struct {
	Data   *ContactData `json:"data"`
	Errors string       `json:"errors"`
}

// ContactListEnvelope matches a contact list response
type ContactListEnvelope struct {
	Data   []*ContactData `json:"data"`
	Errors string         `json:"errors"`
}

// BuildAndLogin creates a user directly in the database, then logs in
// through the API and returns the user together with the live token
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, rawPassword := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"username": user.Username,
		"password": rawPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/users/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope UserEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data == nil || envelope.Data.Token == "" {
		t.Fatalf("login response missing token")
	}

	return user, envelope.Data.Token
}

// ContactBuilder creates test contacts with a builder pattern
type ContactBuilder struct {
	owner     *domain.User
	firstName string
	lastName  string
	email     string
	phone     string
}

// NewContactBuilder creates a new ContactBuilder with default values
func NewContactBuilder() *ContactBuilder {
	return &ContactBuilder{
		firstName: "John",
		lastName:  "Doe",
		email:     "john.doe@example.com",
		phone:     "08123456789",
	}
}

// WithOwner sets the owning user
func (b *ContactBuilder) WithOwner(user *domain.User) *ContactBuilder {
	b.owner = user
	return b
}

// WithFirstName sets the first name
func (b *ContactBuilder) WithFirstName(firstName string) *ContactBuilder {
	b.firstName = firstName
	return b
}

// Build creates the contact in the database
func (b *ContactBuilder) Build(t *testing.T, db *gorm.DB) *domain.Contact {
	t.Helper()

	if b.owner == nil {
		t.Fatalf("contact builder requires an owner")
	}

	contact := &domain.Contact{
		Username:  b.owner.Username,
		FirstName: b.firstName,
		LastName:  b.lastName,
		Email:     b.email,
		Phone:     b.phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create contact: %v", err)
	}

	return contact
}
