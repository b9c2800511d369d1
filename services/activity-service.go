package services

import (
	"context"
	"fmt"
	"time"

	"github.com/web-mahadihasan/TasksZen-Server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecentActivityLimit caps how many events the read path returns per owner.
const RecentActivityLimit = 50

type ActivityService struct {
	activitiesCollection *mongo.Collection
}

func NewActivityService(activitiesCollection *mongo.Collection) *ActivityService {
	return &ActivityService{activitiesCollection: activitiesCollection}
}

// Record appends one immutable event. Events are never updated or deleted.
func (s *ActivityService) Record(ctx context.Context, title, ownerEmail string) (*models.ActivityEvent, error) {
	if title == "" || ownerEmail == "" {
		return nil, fmt.Errorf("title and ownerEmail are required")
	}

	event := &models.ActivityEvent{
		ID:         primitive.NewObjectID(),
		Title:      title,
		OwnerEmail: ownerEmail,
		Timestamp:  time.Now(),
	}

	result, err := s.activitiesCollection.InsertOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to record activity: %v", err)
	}
	event.ID = result.InsertedID.(primitive.ObjectID)

	return event, nil
}

// GetRecent returns the owner's newest events, timestamp descending, capped at
// RecentActivityLimit.
func (s *ActivityService) GetRecent(ctx context.Context, ownerEmail string) ([]models.ActivityEvent, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(RecentActivityLimit)

	cursor, err := s.activitiesCollection.Find(ctx, bson.M{"ownerEmail": ownerEmail}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activities: %v", err)
	}
	defer cursor.Close(ctx)

	var events []models.ActivityEvent
	for cursor.Next(ctx) {
		var event models.ActivityEvent
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode activity: %v", err)
		}
		events = append(events, event)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return events, nil
}
