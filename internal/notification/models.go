package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notice represents a scheduled email announcement to students, e.g. that
// a timetable or seating arrangement has been published.
type Notice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"` // Unique identifier for the notice
	Subject     string             `bson:"subject"`       // Email subject line
	Message     string             `bson:"message"`       // The email body to be sent
	SendTime    time.Time          `bson:"send_time"`     // When the email should be sent
	Departments []string           `bson:"departments"`   // Target department slugs, empty = all
	Status      string             `bson:"status"`        // Status: scheduled, sent, failed
	CreatedAt   time.Time          `bson:"created_at"`    // When the notice was created
	UpdatedAt   time.Time          `bson:"updated_at"`    // When the notice was last updated
	SentTo      []string           `bson:"sent_to"`       // Student emails the notice went to (audit)
}
