package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karanagg166/TaskFlow/logging"
	"github.com/karanagg166/TaskFlow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists with this email or username")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	UserCollection *mongo.Collection
	JWTService     *JWTService
}

func NewUserService(userCollection *mongo.Collection, jwtService *JWTService) *UserService {
	return &UserService{
		UserCollection: userCollection,
		JWTService:     jwtService,
	}
}

// Register creates a new user with a hashed password and mints a session token
// for the new id. A record with the same email or username is a conflict.
func (s *UserService) Register(ctx context.Context, name, username, email, password string) (models.User, string, error) {
	var existing models.User
	err := s.UserCollection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": email}, {"username": username}},
	}).Decode(&existing)
	if err == nil {
		return models.User{}, "", ErrUserExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, "", fmt.Errorf("failed to check existing users: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Groups:    []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, "", ErrUserExists
		}
		return models.User{}, "", fmt.Errorf("failed to save user: %v", err)
	}

	token, err := s.JWTService.GenerateToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %v", err)
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Registered user %s", user.Username)

	user.Password = ""
	return user, token, nil
}

// Login verifies the password hash and mints a session token. Unknown username
// and wrong password return the same error so no account information leaks.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.JWTService.GenerateToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %v", err)
	}

	logging.Logger.Infof("Event ID: USER_LOGIN, Description: User %s logged in", user.Username)

	user.Password = ""
	return user, token, nil
}

// GetUser returns the user record with the password blanked.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	user.Password = ""
	return user, nil
}
