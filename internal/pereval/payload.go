package pereval

import "strings"

// UserPayload carries submitter fields from a request body. Pointer
// fields distinguish "absent" from "present but empty", which the
// update diff gate depends on.
type UserPayload struct {
	Email *string `json:"email"`
	Fam   *string `json:"fam"`
	Name  *string `json:"name"`
	Otc   *string `json:"otc"`
	Phone *string `json:"phone"`
}

type CoordsPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Height    *int     `json:"height"`
}

type LevelPayload struct {
	Winter *string `json:"winter"`
	Summer *string `json:"summer"`
	Autumn *string `json:"autumn"`
	Spring *string `json:"spring"`
}

type ImagePayload struct {
	Data  string `json:"data"`
	Title string `json:"title"`
}

// SubmitRequest is the composite submission body.
type SubmitRequest struct {
	BeautyTitle *string        `json:"beauty_title"`
	Title       *string        `json:"title"`
	OtherTitles *string        `json:"other_titles"`
	Connect     *string        `json:"connect"`
	User        *UserPayload   `json:"user"`
	Coords      *CoordsPayload `json:"coords"`
	Level       *LevelPayload  `json:"level"`
	Images      []ImagePayload `json:"images"`
}

// MissingKeys lists required top-level keys absent from the request.
// Checked before any other validation so the caller gets one complete
// message.
func (r SubmitRequest) MissingKeys() []string {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.User == nil {
		missing = append(missing, "user")
	}
	if r.Coords == nil {
		missing = append(missing, "coords")
	}
	if r.Level == nil {
		missing = append(missing, "level")
	}
	return missing
}

// InvalidFields lists present fields that fail validation. Call only
// after MissingKeys came back empty.
func (r SubmitRequest) InvalidFields() []string {
	var invalid []string
	if strings.TrimSpace(*r.Title) == "" {
		invalid = append(invalid, "title")
	}
	if r.User.Email == nil || !strings.Contains(*r.User.Email, "@") {
		invalid = append(invalid, "user.email")
	}
	if r.User.Fam == nil || *r.User.Fam == "" {
		invalid = append(invalid, "user.fam")
	}
	if r.User.Name == nil || *r.User.Name == "" {
		invalid = append(invalid, "user.name")
	}
	if r.User.Phone == nil || *r.User.Phone == "" {
		invalid = append(invalid, "user.phone")
	}
	if r.Coords.Latitude == nil {
		invalid = append(invalid, "coords.latitude")
	}
	if r.Coords.Longitude == nil {
		invalid = append(invalid, "coords.longitude")
	}
	if r.Coords.Height == nil {
		invalid = append(invalid, "coords.height")
	}
	return invalid
}

// UpdateRequest is a partial patch. Every field is optional; a nil
// Images slice means "leave the photo set alone" while a present one
// replaces it wholesale.
type UpdateRequest struct {
	BeautyTitle *string        `json:"beauty_title"`
	Title       *string        `json:"title"`
	OtherTitles *string        `json:"other_titles"`
	Connect     *string        `json:"connect"`
	User        *UserPayload   `json:"user"`
	Coords      *CoordsPayload `json:"coords"`
	Level       *LevelPayload  `json:"level"`
	Images      []ImagePayload `json:"images"`
}

func strOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
