package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/web-mahadihasan/TasksZen-Server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct {
	usersCollection *mongo.Collection
}

func NewUserService(usersCollection *mongo.Collection) *UserService {
	return &UserService{usersCollection: usersCollection}
}

// RegisterUser creates the user unless the email is already registered, in
// which case the existing record is returned untouched. The bool reports
// whether a new record was written.
func (s *UserService) RegisterUser(ctx context.Context, user models.User) (*models.User, bool, error) {
	var existing models.User
	err := s.usersCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&existing)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to look up user: %v", err)
	}

	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result, err := s.usersCollection.InsertOne(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save user: %v", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	return &user, true, nil
}
