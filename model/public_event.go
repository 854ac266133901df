package model

// PublicEvent is the summary shown on the self-service registration page.
type PublicEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	EventDate   string      `json:"eventDate"`
	EventTime   string      `json:"eventTime"`
	VenueName   string      `json:"venueName"`
	City        string      `json:"city"`
	ImageURL    string      `json:"imageUrl"`
	Status      EventStatus `json:"status"`
}

// RegistrationRequest is the body posted by an exhibitor registering for an event.
type RegistrationRequest struct {
	Data struct {
		Exhibitor *Exhibitor `json:"exhibitor,omitempty"`
	} `json:"data"`
}

// NewPublicEvent trims an event down to what anonymous visitors may see.
func NewPublicEvent(e Event) PublicEvent {
	return PublicEvent{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate,
		EventTime:   e.EventTime,
		VenueName:   e.VenueName,
		City:        e.City,
		ImageURL:    e.ImageURL,
		Status:      e.Status,
	}
}
