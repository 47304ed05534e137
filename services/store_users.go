package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dept-portal/models"
)

// Authenticate performs the legacy plaintext credential lookup. An admin
// account is seeded when the collection is empty so a fresh deployment is
// reachable.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	count, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		seed := models.User{
			ID:       "admin-seed",
			Username: "admin",
			Password: "admin123",
			Name:     "Super Admin",
			Role:     "admin",
		}
		if _, err := s.users.InsertOne(ctx, seed); err != nil {
			return nil, err
		}
		log.Println("Store - seeded default admin account")
	}

	var user models.User
	err = s.users.FindOne(ctx, bson.M{"username": username, "password": password}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) InsertUser(ctx context.Context, user models.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Permissions == nil {
		user.Permissions = models.Permissions{}
	}
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *Store) UpdateUser(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.users.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.users.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MergeUserPermissions merges the given capability changes into the user's
// existing set.
func (s *Store) MergeUserPermissions(ctx context.Context, id string, perms models.Permissions) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{}
	for key, allowed := range perms {
		set["permissions."+key] = allowed
	}
	if len(set) == 0 {
		return nil
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DefaultVisibleDays is served when no settings document exists yet.
var DefaultVisibleDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}

func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var settings models.Settings
	err := s.settings.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return &models.Settings{VisibleDays: DefaultVisibleDays}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, fields bson.M) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.settings.UpdateOne(ctx, bson.M{}, bson.M{"$set": fields}, options.Update().SetUpsert(true))
	return err
}

// Audit records an admin action. It is best-effort: failures are logged and
// never surfaced to the caller.
func (s *Store) Audit(action, username, details string) {
	if username == "" {
		username = "Unknown"
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entry := models.AuditLog{
		ID:       "log-" + uuid.NewString(),
		Action:   action,
		Username: username,
		Details:  details,
		Date:     time.Now(),
	}
	if _, err := s.auditLogs.InsertOne(ctx, entry); err != nil {
		log.Printf("Store - audit log error: %v", err)
	}
}

func (s *Store) ListAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"date": -1}).SetLimit(100)
	cur, err := s.auditLogs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	logs := make([]models.AuditLog, 0)
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) ClearAuditLogs(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.auditLogs.DeleteMany(ctx, bson.M{})
	return err
}
