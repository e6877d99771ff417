package domain

import "time"

// Collection is the document collection tasks are stored in.
const Collection = "task"

// Persisted field names.
const (
	FieldProjectCode       = "projectCode"
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldStatus            = "status"
	FieldDoneDate          = "doneDate"
	FieldDeadLine          = "deadLine"
	FieldTrackingReference = "trackingReference"
)

// SearchFields are matched by the free-text search of the task list.
var SearchFields = []string{FieldTitle, FieldProjectCode, FieldDescription}

// UpcomingWindow is how far ahead FindUpcomingTasks looks.
const UpcomingWindow = 7 * 24 * time.Hour

// Task is a unit of work. ProjectCode refers to a project by code and is
// not checked. A task without a DoneDate is open.
type Task struct {
	ID                string     `json:"id"`
	ProjectCode       string     `json:"projectCode,omitempty"`
	Title             string     `json:"title,omitempty"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status,omitempty"` // free-form, e.g. TODO, IN_PROGRESS, DONE
	CreationDate      time.Time  `json:"creationDate"`
	UpdateDate        *time.Time `json:"updateDate,omitempty"`
	DoneDate          *time.Time `json:"doneDate,omitempty"`
	PlannedStart      *time.Time `json:"plannedStart,omitempty"`
	DeadLine          *time.Time `json:"deadLine,omitempty"`
	Estimate          string     `json:"estimate,omitempty"`
	TrackingReference string     `json:"trackingReference,omitempty"`
}

func (t *Task) GetID() string   { return t.ID }
func (t *Task) SetID(id string) { t.ID = id }

// IsDone reports whether the task has been completed.
func (t *Task) IsDone() bool { return t.DoneDate != nil }

// TaskPatch carries the fields of a partial update. Nil fields are left
// unchanged.
type TaskPatch struct {
	ProjectCode       *string    `json:"projectCode"`
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Status            *string    `json:"status"`
	DoneDate          *time.Time `json:"doneDate"`
	PlannedStart      *time.Time `json:"plannedStart"`
	DeadLine          *time.Time `json:"deadLine"`
	Estimate          *string    `json:"estimate"`
	TrackingReference *string    `json:"trackingReference"`
}

// Apply merges the non-nil fields of patch into t.
func (t *Task) Apply(patch TaskPatch) {
	if patch.ProjectCode != nil {
		t.ProjectCode = *patch.ProjectCode
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DoneDate != nil {
		t.DoneDate = utc(patch.DoneDate)
	}
	if patch.PlannedStart != nil {
		t.PlannedStart = utc(patch.PlannedStart)
	}
	if patch.DeadLine != nil {
		t.DeadLine = utc(patch.DeadLine)
	}
	if patch.Estimate != nil {
		t.Estimate = *patch.Estimate
	}
	if patch.TrackingReference != nil {
		t.TrackingReference = *patch.TrackingReference
	}
}

// Normalize stores every timestamp in UTC.
func (t *Task) Normalize() {
	t.CreationDate = t.CreationDate.UTC()
	t.UpdateDate = utc(t.UpdateDate)
	t.DoneDate = utc(t.DoneDate)
	t.PlannedStart = utc(t.PlannedStart)
	t.DeadLine = utc(t.DeadLine)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
