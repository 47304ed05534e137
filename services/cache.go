package services

import (
	"time"

	"github.com/patrickmn/go-cache"

	"dept-portal/models"
)

// Cache keys for the portal's hot reads.
const (
	CacheKeySchedule = "schedule"
	CacheKeySettings = "settings"
	CacheKeyCourses  = "courses"
)

type CacheService struct {
	cache *cache.Cache
}

func NewCacheService(defaultExpiration, cleanupInterval time.Duration) *CacheService {
	return &CacheService{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (s *CacheService) Get(key string) (interface{}, bool) {
	return s.cache.Get(key)
}

func (s *CacheService) Set(key string, value interface{}, duration time.Duration) {
	s.cache.Set(key, value, duration)
}

func (s *CacheService) Delete(key string) {
	s.cache.Delete(key)
}

func (s *CacheService) Flush() {
	s.cache.Flush()
}

// GetEvents returns the cached timetable snapshot, if any.
func (s *CacheService) GetEvents() ([]models.ScheduleEvent, bool) {
	v, found := s.cache.Get(CacheKeySchedule)
	if !found {
		return nil, false
	}
	events, ok := v.([]models.ScheduleEvent)
	return events, ok
}

func (s *CacheService) SetEvents(events []models.ScheduleEvent) {
	s.cache.Set(CacheKeySchedule, events, 0)
}

// GetSettings returns the cached site settings, if any.
func (s *CacheService) GetSettings() (*models.Settings, bool) {
	v, found := s.cache.Get(CacheKeySettings)
	if !found {
		return nil, false
	}
	settings, ok := v.(*models.Settings)
	return settings, ok
}

func (s *CacheService) SetSettings(settings *models.Settings) {
	s.cache.Set(CacheKeySettings, settings, 0)
}
