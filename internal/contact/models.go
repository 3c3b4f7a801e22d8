package contact

import "time"

// Submission is one message sent through the contact form.
type Submission struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	ClientIP  string    `json:"clientIp,omitempty" bson:"clientIp,omitempty"`
	UserAgent string    `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
