package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CourseCatalogKey returns the cache key for the full course catalog listing.
func (r *CacheKeyStruct) CourseCatalogKey() string {
	return "cursos:catalog"
}

// EnrollmentEventsChannel returns the Redis PubSub channel carrying
// enrollment lifecycle events for the admin live feed.
func (r *CacheKeyStruct) EnrollmentEventsChannel() string {
	return "matriculas:events"
}

var CacheKey = NewCacheKeyStruct()
