package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// DepartmentDirectoryKey returns the cache key for the derived department directory.
func (r *CacheKeyStruct) DepartmentDirectoryKey() string {
	return "departments:directory"
}

var CacheKey = NewCacheKeyStruct()
