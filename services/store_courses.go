package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dept-portal/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("not found")

// ListCourses returns all courses in display order.
func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.courses.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	courses := make([]models.Course, 0)
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var course models.Course
	err := s.courses.FindOne(ctx, bson.M{"id": id}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// SaveCourse inserts a new course or updates the metadata of an existing one.
// created reports whether a new document was written.
func (s *Store) SaveCourse(ctx context.Context, id, name, instructor string) (created bool, err error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	res, err := s.courses.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$set": bson.M{"name": name, "instructor": instructor, "updatedAt": now},
			"$setOnInsert": bson.M{
				"id":        id,
				"files":     []models.FileAttachment{},
				"exams":     []models.Exam{},
				"order":     0,
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save course: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.courses.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderCourses rewrites the order field to match the given id sequence.
func (s *Store) ReorderCourses(ctx context.Context, ids []string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	for i, id := range ids {
		if _, err := s.courses.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"order": i}}); err != nil {
			return fmt.Errorf("failed to reorder course %s: %w", id, err)
		}
	}
	return nil
}

func (s *Store) AddCourseFile(ctx context.Context, courseID string, file models.FileAttachment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.courses.UpdateOne(ctx,
		bson.M{"id": courseID},
		bson.M{"$push": bson.M{"files": file}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveCourseFile detaches the file from the course and returns it so the
// caller can delete the backing object.
func (s *Store) RemoveCourseFile(ctx context.Context, courseID, fileID string) (*models.FileAttachment, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	var removed *models.FileAttachment
	for i := range course.Files {
		if course.Files[i].ID == fileID {
			removed = &course.Files[i]
			break
		}
	}
	if removed == nil {
		return nil, ErrNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	_, err = s.courses.UpdateOne(ctx,
		bson.M{"id": courseID},
		bson.M{"$pull": bson.M{"files": bson.M{"id": fileID}}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) AddExam(ctx context.Context, courseID string, exam models.Exam) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.courses.UpdateOne(ctx,
		bson.M{"id": courseID},
		bson.M{"$push": bson.M{"exams": exam}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateExam(ctx context.Context, courseID string, exam models.Exam) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.courses.UpdateOne(ctx,
		bson.M{"id": courseID, "exams.id": exam.ID},
		bson.M{"$set": bson.M{
			"exams.$.title":    exam.Title,
			"exams.$.date":     exam.Date,
			"exams.$.time":     exam.Time,
			"exams.$.syllabus": exam.Syllabus,
			"updatedAt":        time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) RemoveExam(ctx context.Context, courseID, examID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.courses.UpdateOne(ctx,
		bson.M{"id": courseID},
		bson.M{"$pull": bson.M{"exams": bson.M{"id": examID}}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
