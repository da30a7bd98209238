package postgres

import "github.com/unimeet/unimeet-api/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.ClubMember{},
	&entity.Event{},
	&entity.EventAttendee{},
	&entity.FavoriteEvent{},
	&entity.NotificationLog{},
}
