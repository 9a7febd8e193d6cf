package repository

import (
	"lotto/application"
	"lotto/database"
	"lotto/domain/events"
)

// CreateTestUnitOfWork creates a unit of work for tests. Passing a nil bus
// drops committed events.
func CreateTestUnitOfWork(db *database.DB, bus *events.Bus) application.UnitOfWork {
	return NewUnitOfWorkFactory(db, bus).Create()
}
