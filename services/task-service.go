package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/web-mahadihasan/TasksZen-Server/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidLane   = errors.New("invalid lane")
	ErrInvalidTaskID = errors.New("invalid task ID format")
)

// TaskUpdate carries the mutable fields of a task. Lane changes go through
// MoveTask so the lane ordering stays consistent.
type TaskUpdate struct {
	Title       string
	Description string
	Deadline    time.Time
	Priority    models.Priority
}

type TaskService struct {
	client          *mongo.Client
	tasksCollection *mongo.Collection
	activityService *ActivityService
	activityBreaker *gobreaker.CircuitBreaker
}

func NewTaskService(client *mongo.Client, tasksCollection *mongo.Collection, activityService *ActivityService, activityBreaker *gobreaker.CircuitBreaker) *TaskService {
	return &TaskService{
		client:          client,
		tasksCollection: tasksCollection,
		activityService: activityService,
		activityBreaker: activityBreaker,
	}
}

// CreateTask inserts a new task at the end of its lane and records the
// creation in the activity log.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if !task.Lane.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLane, task.Lane)
	}

	laneTasks, err := s.loadLaneTasks(ctx, task.Lane)
	if err != nil {
		return nil, err
	}

	task.ID = primitive.NewObjectID()
	task.Order = NextOrder(laneTasks)
	task.CreatedAt = time.Now()

	result, err := s.tasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	if err := s.recordActivity(ctx, fmt.Sprintf("Task %q added to %s", task.Title, task.Lane), task.OwnerEmail); err != nil {
		return nil, err
	}

	return task, nil
}

// GetTasks returns the owner's tasks sorted by (lane, order). A non-empty
// search narrows the result to titles containing the substring,
// case-insensitively.
func (s *TaskService) GetTasks(ctx context.Context, ownerEmail, search string) ([]models.Task, error) {
	filter := bson.M{"ownerEmail": ownerEmail}
	if search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "lane", Value: 1}, {Key: "order", Value: 1}})

	cursor, err := s.tasksCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	return decodeTasks(ctx, cursor)
}

// UpdateTask overwrites the task's mutable fields and records the update.
func (s *TaskService) UpdateTask(ctx context.Context, taskID primitive.ObjectID, update TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}

	set := bson.M{
		"title":       update.Title,
		"description": update.Description,
		"deadline":    update.Deadline,
		"priority":    update.Priority,
	}
	if _, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated task: %v", err)
	}

	if err := s.recordActivity(ctx, fmt.Sprintf("Task %q updated", task.Title), task.OwnerEmail); err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask removes the task, closes the gap it leaves in its lane, and
// records the deletion under the task's prior title and owner.
func (s *TaskService) DeleteTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}

	if _, err := s.tasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return nil, fmt.Errorf("failed to delete task: %v", err)
	}

	// Shift trailing siblings down so the lane's orders stay dense.
	shift := bson.M{"lane": task.Lane, "order": bson.M{"$gt": task.Order}}
	if _, err := s.tasksCollection.UpdateMany(ctx, shift, bson.M{"$inc": bson.M{"order": -1}}); err != nil {
		return nil, fmt.Errorf("failed to compact lane ordering: %v", err)
	}

	if err := s.recordActivity(ctx, fmt.Sprintf("Task %q deleted", task.Title), task.OwnerEmail); err != nil {
		return nil, err
	}

	return &task, nil
}

// MoveTask places the task at the end of the target lane. The source lane is
// left with a gap in its ordering; the next bulk reorder heals it.
func (s *TaskService) MoveTask(ctx context.Context, taskID primitive.ObjectID, targetLane models.Lane, ownerEmail string) ([]models.Task, error) {
	if !targetLane.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLane, targetLane)
	}

	var task models.Task
	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}
	oldLane := task.Lane

	laneTasks, err := s.loadLaneTasks(ctx, targetLane)
	if err != nil {
		return nil, err
	}
	insertPosition := InsertPosition(laneTasks)

	// Normally a no-op since the task goes strictly to the end.
	shift := bson.M{"lane": targetLane, "order": bson.M{"$gte": insertPosition}}
	if _, err := s.tasksCollection.UpdateMany(ctx, shift, bson.M{"$inc": bson.M{"order": 1}}); err != nil {
		return nil, fmt.Errorf("failed to shift tasks in target lane: %v", err)
	}

	update := bson.M{"$set": bson.M{"lane": targetLane, "order": insertPosition}}
	result, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrTaskNotFound
	}

	if err := s.recordActivity(ctx, fmt.Sprintf("%s moved from %s to %s", task.Title, oldLane, targetLane), ownerEmail); err != nil {
		return nil, err
	}

	return s.GetTasks(ctx, ownerEmail, "")
}

// ReorderTasks applies a caller-supplied set of (order, lane) assignments as a
// single transaction: all of them commit or none do. The caller is trusted to
// submit a self-consistent assignment for the whole lane.
func (s *TaskService) ReorderTasks(ctx context.Context, assignments []models.TaskAssignment, lane models.Lane, ownerEmail string) ([]models.Task, error) {
	if lane != "" && !lane.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLane, lane)
	}
	for _, a := range assignments {
		if !a.Lane.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLane, a.Lane)
		}
		if _, err := primitive.ObjectIDFromHex(a.ID); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTaskID, a.ID)
		}
	}

	session, err := s.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, a := range assignments {
			taskID, _ := primitive.ObjectIDFromHex(a.ID)
			update := bson.M{"$set": bson.M{"order": a.Order, "lane": a.Lane}}
			result, err := s.tasksCollection.UpdateOne(sc, bson.M{"_id": taskID}, update)
			if err != nil {
				return nil, fmt.Errorf("failed to update task order: %v", err)
			}
			if result.MatchedCount == 0 {
				return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, a.ID)
			}
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	title := "Tasks reordered"
	if lane != "" {
		title = fmt.Sprintf("Tasks reordered in %s", lane)
	}
	if err := s.recordActivity(ctx, title, ownerEmail); err != nil {
		return nil, err
	}

	return s.GetTasks(ctx, ownerEmail, "")
}

func (s *TaskService) loadLaneTasks(ctx context.Context, lane models.Lane) ([]models.Task, error) {
	cursor, err := s.tasksCollection.Find(ctx, bson.M{"lane": lane})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lane tasks: %v", err)
	}
	defer cursor.Close(ctx)

	return decodeTasks(ctx, cursor)
}

// recordActivity runs strictly after the triggering mutation has committed.
// The breaker makes a struggling activity store fail fast; failures still
// propagate to the caller.
func (s *TaskService) recordActivity(ctx context.Context, title, ownerEmail string) error {
	_, err := s.activityBreaker.Execute(func() (interface{}, error) {
		return s.activityService.Record(ctx, title, ownerEmail)
	})
	if err != nil {
		return fmt.Errorf("failed to record activity: %v", err)
	}
	return nil
}

func decodeTasks(ctx context.Context, cursor *mongo.Cursor) ([]models.Task, error) {
	var tasks []models.Task
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return tasks, nil
}
