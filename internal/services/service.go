package services

import (
	"recommai/config"
	"recommai/internal/database"
)

type Service struct {
	Session   *SessionService
	Scheduler *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	sessionService := NewSessionService(db, config)
	schedulerService := NewSchedulerService()

	return Service{
		Session:   sessionService,
		Scheduler: schedulerService,
	}, nil
}
