package discovery

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/thushan/ollaview/internal/core/domain"
)

const (
	modelsField   = "models"
	nameField     = "name"
	sizeField     = "size"
	modifiedField = "modified"

	// newer Ollama builds report modified_at, older ones modified
	modifiedAtField = "modified_at"
)

// ParseTagsResponse turns an /api/tags body into records, keeping the
// service's order. A missing, null or otherwise empty "models" is the empty
// list. A body that is not JSON at all, including an empty one, is an error.
func ParseTagsResponse(body []byte) ([]domain.ModelRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ParseError{Format: "json", Data: body, Err: errors.New("invalid JSON")}
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &ParseError{Format: "json", Data: body, Err: fmt.Errorf("expected an object, got %s", root.Type)}
	}

	models := root.Get(modelsField)
	if isEmptyValue(models) {
		return []domain.ModelRecord{}, nil
	}
	if !models.IsArray() {
		return nil, &ParseError{Format: "json", Data: body, Err: fmt.Errorf("field '%s' is not an array", modelsField)}
	}

	entries := models.Array()
	records := make([]domain.ModelRecord, 0, len(entries))
	for i, entry := range entries {
		if !entry.IsObject() {
			return nil, &ParseError{Format: "json", Data: body, Err: fmt.Errorf("models[%d] is not an object", i)}
		}
		records = append(records, parseRecord(entry))
	}

	return records, nil
}

// isEmptyValue reports values that carry no models: absent, null, false, 0,
// "" and {}. An empty array is handled by the normal path.
func isEmptyValue(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Float() == 0
	case gjson.String:
		return v.Str == ""
	case gjson.JSON:
		return v.IsObject() && len(v.Map()) == 0
	default:
		return !v.Exists()
	}
}

func parseRecord(entry gjson.Result) domain.ModelRecord {
	record := domain.ModelRecord{
		Name:     fieldString(entry.Get(nameField)),
		Size:     fieldString(entry.Get(sizeField)),
		Modified: fieldString(entry.Get(modifiedField)),
	}

	if record.Modified == domain.UnknownField {
		if at := entry.Get(modifiedAtField); at.Exists() && at.Type != gjson.Null {
			record.Modified = fieldString(at)
		}
	}

	if size := entry.Get(sizeField); size.Type == gjson.Number {
		if n, err := strconv.ParseInt(size.Raw, 10, 64); err == nil && n >= 0 {
			record.SizeBytes = n
			record.HasSize = true
		}
	}

	return record
}

// fieldString renders a JSON value the way it should appear in the table:
// strings unquoted, numbers as written, anything missing as Unknown
func fieldString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.String()
	case gjson.True, gjson.False:
		return v.Raw
	case gjson.Null:
		return domain.UnknownField
	default:
		if !v.Exists() {
			return domain.UnknownField
		}
		return v.Raw
	}
}
