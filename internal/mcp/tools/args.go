package tools

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// decode maps tool arguments onto out using its json tags. Numbers may
// arrive as strings and timestamps as RFC 3339 strings.
func decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return errortypes.Validation("invalid arguments: %v", err)
	}
	return nil
}

type pageArgs struct {
	Page   int    `json:"page"`
	Size   int    `json:"size"`
	Search string `json:"search"`
	Filter string `json:"filter"`
}

func decodePage(args map[string]any) (pageArgs, query.PageRequest, error) {
	var a pageArgs
	if err := decode(args, &a); err != nil {
		return a, query.PageRequest{}, err
	}
	page, size := query.NormalizePage(a.Page, a.Size)
	return a, query.NewPageRequest(page, size), nil
}

// requireString returns the trimmed string argument or a validation error.
func requireString(args map[string]any, key string) (string, error) {
	v, _ := args[key].(string)
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errortypes.Validation("%s is required", key)
	}
	return v, nil
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func pageProps(searchHint string) map[string]any {
	return map[string]any{
		"page":   prop("integer", "Zero-based page number, default 0"),
		"size":   prop("integer", "Items per page, default 10, max 100"),
		"search": prop("string", "Case-insensitive text searched in "+searchHint),
		"filter": prop("string", "Exact match in the form fieldName:value"),
	}
}
