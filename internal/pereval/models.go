package pereval

import "time"

// Status is the moderation state of a submitted pass. Transitions are
// driven by moderators; the submission path only ever reads it.
type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// User identifies a submitter by unique email. Created once per email;
// never modified or deleted through the submission surface.
type User struct {
	ID    int64  `json:"-"`
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}

type Coords struct {
	ID        int64   `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

type Level struct {
	ID     int64  `json:"-"`
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

type Image struct {
	ID    int64  `json:"-"`
	Title string `json:"title"`
	Data  []byte `json:"data"`
}

// Pass is the aggregate root: one submitter, one set of coords, one
// difficulty level and any number of images.
type Pass struct {
	ID          int64     `json:"id"`
	BeautyTitle string    `json:"beauty_title"`
	Title       string    `json:"title"`
	OtherTitles string    `json:"other_titles"`
	Connect     string    `json:"connect"`
	AddTime     time.Time `json:"add_time"`
	User        User      `json:"user"`
	Coords      Coords    `json:"coords"`
	Level       Level     `json:"level"`
	Images      []Image   `json:"images"`
	Status      Status    `json:"status"`
}
