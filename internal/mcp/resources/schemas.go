package resources

var schemas = map[string]func() map[string]any{
	"project": projectSchema,
	"task":    taskSchema,
	"person":  personSchema,
}

func field(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func dateField(description string) map[string]any {
	return map[string]any{"type": "string", "format": "date-time", "description": description}
}

func projectSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          field("string", "Unique identifier"),
			"projectName": field("string", "Display name of the project"),
			"projectCode": field("string", "Unique code identifier"),
			"description": field("string", "Project description"),
		},
		"required": []string{"projectName"},
	}
}

func taskSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":                field("string", "Unique identifier"),
			"projectCode":       field("string", "Associated project code"),
			"title":             field("string", "Task title"),
			"description":       field("string", "Task description"),
			"status":            field("string", "Task status"),
			"creationDate":      dateField("Set on creation"),
			"updateDate":        dateField("Set on every update"),
			"doneDate":          dateField("Completion date; unset while the task is open"),
			"plannedStart":      dateField("Planned start"),
			"deadLine":          dateField("Deadline"),
			"estimate":          field("string", "Time estimate"),
			"trackingReference": field("string", "External tracking reference"),
		},
		"required": []string{"title"},
	}
}

func personSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":           field("string", "Unique identifier"),
			"firstName":    field("string", "First name"),
			"lastName":     field("string", "Last name"),
			"email":        map[string]any{"type": "string", "format": "email", "description": "Unique email address"},
			"creationDate": dateField("Set on creation"),
			"updateDate":   dateField("Set on every update"),
		},
		"required": []string{"firstName", "lastName", "email"},
	}
}
