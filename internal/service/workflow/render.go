package workflow

import (
	"fmt"
	"regexp"
	"strings"

	"church-admin-be/internal/domain"
)

// Render substitutes {{ placeholder }} tokens in a template string. Matching
// is whitespace-tolerant inside the braces. Tokens that resolve to no known
// field are left untouched rather than stripped, so a typo in a template is
// visible in the delivered mail instead of silently disappearing. No HTML
// escaping is applied; templates and field values are trusted tenant content.
func Render(template string, fields map[string]interface{}, church domain.ChurchSettings) string {
	processed := template

	firstName := stringField(fields, "first_name")
	lastName := stringField(fields, "last_name")
	fullName := strings.TrimSpace(firstName + " " + lastName)

	processed = replaceToken(processed, "first_name", firstName)
	processed = replaceToken(processed, "last_name", lastName)
	processed = replaceToken(processed, "full_name", fullName)

	churchName := church.ChurchName
	if churchName == "" {
		churchName = domain.DefaultChurchName
	}
	processed = replaceToken(processed, "church_name", churchName)

	for key, value := range fields {
		processed = replaceToken(processed, key, stringify(value))
	}

	return processed
}

func replaceToken(template, key, value string) string {
	pattern := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(key) + `\s*\}\}`)
	return pattern.ReplaceAllLiteralString(template, value)
}

func stringField(fields map[string]interface{}, key string) string {
	if value, ok := fields[key]; ok {
		return stringify(value)
	}
	return ""
}

func stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	default:
		return fmt.Sprintf("%v", v)
	}
}
