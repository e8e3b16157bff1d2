package models

// BookingInput is the request body shape for creating a booking. Date is the
// calendar date as sent by the form ("YYYY-MM-DD").
type BookingInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	AdditionalInfo string `json:"additionalInfo"`
}

// BookingUpdate carries a partial update. Nil fields are left untouched.
type BookingUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Service        *string `json:"service"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	AdditionalInfo *string `json:"additionalInfo"`
	Status         *string `json:"status"`
}
