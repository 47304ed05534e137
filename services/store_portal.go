package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dept-portal/models"
)

func (s *Store) ListNotices(ctx context.Context) ([]models.Notice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.notices.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	notices := make([]models.Notice, 0)
	if err := cur.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

func (s *Store) GetNotice(ctx context.Context, id string) (*models.Notice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var notice models.Notice
	err := s.notices.FindOne(ctx, bson.M{"id": id}).Decode(&notice)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

// UpsertNotice creates or updates a notice. When a new PDF key replaces an
// old one, the previous key is returned so the caller can delete the object.
func (s *Store) UpsertNotice(ctx context.Context, notice models.Notice) (previousPDF string, err error) {
	existing, err := s.GetNotice(ctx, notice.ID)
	if err != nil && err != ErrNotFound {
		return "", err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{"title": notice.Title, "date": notice.Date, "username": notice.Username}
	if notice.PDFKey != "" {
		set["pdfKey"] = notice.PDFKey
		if existing != nil && existing.PDFKey != "" && existing.PDFKey != notice.PDFKey {
			previousPDF = existing.PDFKey
		}
	}
	_, err = s.notices.UpdateOne(ctx,
		bson.M{"id": notice.ID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"id": notice.ID, "createdAt": notice.CreatedAt}},
		options.Update().SetUpsert(true),
	)
	return previousPDF, err
}

func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.notices.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListSyllabus(ctx context.Context) ([]models.Syllabus, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.syllabus.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"code": 1}))
	if err != nil {
		return nil, err
	}
	entries := make([]models.Syllabus, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) UpsertSyllabus(ctx context.Context, entry models.Syllabus) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.syllabus.ReplaceOne(ctx, bson.M{"code": entry.Code}, entry, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) DeleteSyllabus(ctx context.Context, code string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.syllabus.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.complaints.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	complaints := make([]models.Complaint, 0)
	if err := cur.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Store) InsertComplaint(ctx context.Context, complaint models.Complaint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.complaints.InsertOne(ctx, complaint)
	return err
}

func (s *Store) DeleteComplaint(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.complaints.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (s *Store) ListOpinions(ctx context.Context) ([]models.Opinion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.opinions.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	opinions := make([]models.Opinion, 0)
	if err := cur.All(ctx, &opinions); err != nil {
		return nil, err
	}
	return opinions, nil
}

func (s *Store) InsertOpinion(ctx context.Context, opinion models.Opinion) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.opinions.InsertOne(ctx, opinion)
	return err
}

func (s *Store) DeleteOpinion(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.opinions.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.messages.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	messages := make([]models.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Store) InsertMessage(ctx context.Context, message models.Message) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.messages.InsertOne(ctx, message)
	return err
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.messages.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (s *Store) ListDeletionRequests(ctx context.Context) ([]models.DeletionRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.deletions.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	requests := make([]models.DeletionRequest, 0)
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) GetDeletionRequest(ctx context.Context, id string) (*models.DeletionRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var request models.DeletionRequest
	err := s.deletions.FindOne(ctx, bson.M{"id": id}).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *Store) InsertDeletionRequest(ctx context.Context, request models.DeletionRequest) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.deletions.InsertOne(ctx, request)
	return err
}

func (s *Store) SetDeletionRequestStatus(ctx context.Context, id, status string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.deletions.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
