package domain

// Collection is the document collection projects are stored in.
const Collection = "project"

// Persisted field names.
const (
	FieldProjectName = "projectName"
	FieldProjectCode = "projectCode"
	FieldDescription = "description"
)

// SearchFields are matched by the free-text search of the project list.
var SearchFields = []string{FieldProjectName, FieldProjectCode, FieldDescription}

// Project groups tasks under a short project code.
type Project struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	ProjectCode string `json:"projectCode,omitempty"`
	Description string `json:"description,omitempty"`
}

func (p *Project) GetID() string   { return p.ID }
func (p *Project) SetID(id string) { p.ID = id }

// ProjectPatch carries the fields of a partial update. Nil fields are left
// unchanged.
type ProjectPatch struct {
	ProjectName *string `json:"projectName"`
	ProjectCode *string `json:"projectCode"`
	Description *string `json:"description"`
}

// Apply merges the non-nil fields of patch into p.
func (p *Project) Apply(patch ProjectPatch) {
	if patch.ProjectName != nil {
		p.ProjectName = *patch.ProjectName
	}
	if patch.ProjectCode != nil {
		p.ProjectCode = *patch.ProjectCode
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
}
