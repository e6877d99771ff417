package domain

import "time"

// Collection is the document collection persons are stored in.
const Collection = "person"

// Persisted field names.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
)

// SearchFields are matched by the free-text search of the person list.
var SearchFields = []string{FieldFirstName, FieldLastName, FieldEmail}

type Person struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Email        string     `json:"email"`
	CreationDate time.Time  `json:"creationDate"`
	UpdateDate   *time.Time `json:"updateDate,omitempty"`
}

func (p *Person) GetID() string   { return p.ID }
func (p *Person) SetID(id string) { p.ID = id }

// PersonPatch carries the fields of a partial update. Nil fields are left
// unchanged.
type PersonPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

// Apply merges the non-nil fields of patch into p.
func (p *Person) Apply(patch PersonPatch) {
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
}
