package stylist

import (
	"encoding/json"
	"strings"

	"closetapi/models"
)

// ExtractJSONObject returns the text between the first '{' and the last '}',
// both included.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseRecommendation decodes the outfit object embedded in a model reply.
// Text around the object is ignored and its keys and value shapes are not
// checked. Any failure yields a *ParseError carrying raw.
func ParseRecommendation(raw string) (*models.Recommendation, error) {
	body, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, &ParseError{Reason: "no JSON object found in reply", Raw: raw}
	}
	var rec models.Recommendation
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, &ParseError{Reason: err.Error(), Raw: raw, Err: err}
	}
	return &rec, nil
}
