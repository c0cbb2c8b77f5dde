package postgres

import "github.com/nordvik-dev/medlemshub/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.UserMembership{},
	&entity.SkillBadge{},
	&entity.Location{},
	&entity.Event{},
	&entity.Product{},
	&entity.ProductMembership{},
	&entity.Ticket{},
	&entity.EventParticipant{},
	&entity.EventReserve{},
	&entity.Order{},
	&entity.OrderItem{},
	&entity.Task{},
	&entity.PaymentEvent{},
}
