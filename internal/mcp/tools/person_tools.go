package tools

import (
	"context"
	"strings"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/persons/domain"
)

func (r *Registry) registerPersonTools() {
	personProps := func() map[string]any {
		return map[string]any{
			"firstName": prop("string", "First name"),
			"lastName":  prop("string", "Last name"),
			"email":     prop("string", "Unique, valid email address"),
		}
	}

	r.register(Definition{
		Name:        "create-person",
		Description: "Creates a person. firstName, lastName and a valid email are required.",
		InputSchema: objectSchema(personProps(), "firstName", "lastName", "email"),
	}, r.createPerson)

	r.register(Definition{
		Name:        "find-person-by-id",
		Description: "Retrieves a person by id.",
		InputSchema: objectSchema(map[string]any{"id": prop("string", "Person id")}, "id"),
	}, r.findPersonByID)

	r.register(Definition{
		Name:        "find-person-by-email",
		Description: "Retrieves a person by email address.",
		InputSchema: objectSchema(map[string]any{"email": prop("string", "Email address")}, "email"),
	}, r.findPersonByEmail)

	updateProps := personProps()
	updateProps["id"] = prop("string", "Person id")
	r.register(Definition{
		Name:        "update-person",
		Description: "Updates an existing person. id is required; other fields are changed only when given. Refreshes updateDate.",
		InputSchema: objectSchema(updateProps, "id"),
	}, r.updatePerson)

	r.register(Definition{
		Name:        "delete-person",
		Description: "Permanently removes a person. Fails when no person has the id.",
		InputSchema: objectSchema(map[string]any{"id": prop("string", "Person id")}, "id"),
	}, r.deletePerson)

	r.register(Definition{
		Name:        "find-persons",
		Description: "Lists persons one page at a time with optional search and filter.",
		InputSchema: objectSchema(pageProps("firstName, lastName and email")),
	}, r.findPersons)

	r.register(Definition{
		Name:        "list-all-persons",
		Description: "Lists every person without pagination. Use with care on large datasets.",
		InputSchema: objectSchema(map[string]any{}),
	}, r.listAllPersons)
}

func (r *Registry) createPerson(ctx context.Context, args map[string]any) (any, error) {
	var p domain.Person
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return nil, errortypes.Validation("first name and last name are required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, errortypes.Validation("email is required")
	}
	if !validEmail(p.Email) {
		return nil, errortypes.Validation("invalid email format: %s", p.Email)
	}
	return r.persons.Create(ctx, &p)
}

func (r *Registry) findPersonByID(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	p, err := r.persons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Message{Message: "Person not found with id: " + id}, nil
	}
	return p, nil
}

func (r *Registry) findPersonByEmail(ctx context.Context, args map[string]any) (any, error) {
	email, err := requireString(args, "email")
	if err != nil {
		return nil, err
	}
	p, err := r.persons.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Message{Message: "Person not found with email: " + email}, nil
	}
	return p, nil
}

func (r *Registry) updatePerson(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	var patch domain.PersonPatch
	if err := decode(args, &patch); err != nil {
		return nil, err
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" && !validEmail(*patch.Email) {
		return nil, errortypes.Validation("invalid email format: %s", *patch.Email)
	}
	return r.persons.Update(ctx, id, patch)
}

func (r *Registry) deletePerson(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	p, err := r.persons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errortypes.NotFound("person not found with id: %s", id)
	}
	if err := r.persons.Delete(ctx, id); err != nil {
		return nil, err
	}
	return Message{Message: "Person deleted successfully: " + id}, nil
}

func (r *Registry) findPersons(ctx context.Context, args map[string]any) (any, error) {
	a, req, err := decodePage(args)
	if err != nil {
		return nil, err
	}
	return r.persons.FindAll(ctx, req, a.Search, a.Filter)
}

func (r *Registry) listAllPersons(ctx context.Context, _ map[string]any) (any, error) {
	return r.persons.List(ctx)
}
