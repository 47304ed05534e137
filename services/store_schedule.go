package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dept-portal/models"
)

// ListScheduleEvents returns the full timetable snapshot the resolver works
// from. Ordering is left to the timetable package.
func (s *Store) ListScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.schedule.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule events: %w", err)
	}
	events := make([]models.ScheduleEvent, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpsertScheduleEvent creates or replaces an event by id. Cancellation is
// reset on update, matching the edit form's behavior.
func (s *Store) UpsertScheduleEvent(ctx context.Context, e models.ScheduleEvent) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	e.IsCancelled = false
	_, err := s.schedule.ReplaceOne(ctx, bson.M{"id": e.ID}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert schedule event: %w", err)
	}
	return nil
}

// InsertScheduleEvents bulk-inserts imported events.
func (s *Store) InsertScheduleEvents(ctx context.Context, events []models.ScheduleEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(events))
	for _, e := range events {
		docs = append(docs, e)
	}
	if _, err := s.schedule.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert schedule events: %w", err)
	}
	return nil
}

func (s *Store) SetScheduleCancelled(ctx context.Context, id string, cancelled bool) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.schedule.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"isCancelled": cancelled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteScheduleEvent(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.schedule.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
