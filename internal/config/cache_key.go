package config

import "fmt"

type CacheKeyStruct struct{}

// StudentSessionKey returns the Redis key holding the active session JTI
// for a student (single-device login enforcement).
func (r *CacheKeyStruct) StudentSessionKey(studentID string) string {
	return fmt.Sprintf("login:%s", studentID)
}

// ExamListKey returns the Redis key for the cached public exam list.
func (r *CacheKeyStruct) ExamListKey() string {
	return "catalog:exams"
}

var CacheKey = &CacheKeyStruct{}
