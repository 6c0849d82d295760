package models

// This file provides a central import point for all models
// and helper functions for database operations

// AllModels returns all model types for GORM operations
// Note: Migrations are handled by golang-migrate, not GORM AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&OneTimeCode{},
		&Session{},
		&Project{},
		&ContactSubmission{},
	}
}
