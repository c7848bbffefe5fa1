package skills

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors aggregates every violation found in one file, so a broken
// config fails a deploy with the full list instead of the first hit.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return fmt.Sprintf("invalid field-semantics config (%d violations): %s", len(e), strings.Join(msgs, "; "))
}

// buildConfig validates a parsed document and assembles the immutable
// PlatformConfig. All violations are collected before returning.
func buildConfig(doc map[string]interface{}) (*PlatformConfig, error) {
	var violations ValidationErrors
	addViolation := func(path, format string, args ...interface{}) {
		violations = append(violations, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	cfg := &PlatformConfig{
		FieldRules: make(map[string]*FieldRule),
	}

	versionSet := false
	switch v := doc["version"].(type) {
	case int:
		cfg.Version = v
		versionSet = true
	case float64:
		cfg.Version = int(v)
		versionSet = true
	case nil:
		addViolation("version", "required numeric field is missing")
	default:
		addViolation("version", "must be a number, got %T", v)
	}
	if versionSet && cfg.Version < 1 {
		addViolation("version", "must be >= 1, got %d", cfg.Version)
	}

	cfg.EntityType = requireString(doc, "entity_type", addViolation)
	cfg.Platform = requireString(doc, "platform", addViolation)

	rawRules, ok := doc["field_rules"].(map[string]interface{})
	if !ok {
		addViolation("field_rules", "required mapping is missing")
		return nil, violations
	}

	for name, rawRule := range rawRules {
		path := "field_rules." + name
		ruleDoc, isMapping := rawRule.(map[string]interface{})
		if !isMapping {
			addViolation(path, "must be a mapping, got %T", rawRule)
			continue
		}

		key := strings.ToLower(name)
		if _, dup := cfg.FieldRules[key]; dup {
			addViolation(path, "duplicate field name after lowercasing")
			continue
		}

		rule := buildRule(path, ruleDoc, addViolation)
		cfg.FieldRules[key] = rule
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return cfg, nil
}

func buildRule(path string, doc map[string]interface{}, addViolation func(string, string, ...interface{})) *FieldRule {
	rule := &FieldRule{}

	semantic, ok := doc["semantic_type"].(string)
	if !ok || semantic == "" {
		addViolation(path+".semantic_type", "required string field is missing")
	} else {
		rule.SemanticType = SemanticType(semantic)
		if !validSemanticTypes[rule.SemanticType] {
			addViolation(path+".semantic_type", "unknown semantic type %q", semantic)
		}
	}

	if agg, present := doc["aggregation"]; present {
		s, isString := agg.(string)
		if !isString || !validAggregations[s] {
			addViolation(path+".aggregation", "must be one of count, sum, avg, percentage, none; got %v", agg)
		} else {
			rule.Aggregation = s
		}
	}

	if role, present := doc["role"]; present {
		s, isString := role.(string)
		if !isString || !validRoles[s] {
			addViolation(path+".role", "must be one of hero, supporting, trend, breakdown, detail; got %v", role)
		} else {
			rule.Role = s
		}
	}

	if eligible, present := doc["chart_eligible"]; present {
		b, isBool := eligible.(bool)
		if !isBool {
			addViolation(path+".chart_eligible", "must be a boolean, got %T", eligible)
		} else {
			rule.ChartEligible = &b
		}
	}

	if card, present := doc["max_pie_cardinality"]; present {
		n, isInt := card.(int)
		if !isInt || n < 1 {
			addViolation(path+".max_pie_cardinality", "must be a positive integer, got %v", card)
		} else {
			rule.MaxPieCardinality = n
		}
	}

	rule.References = optionalString(doc, path, "references", addViolation)
	rule.DisplayName = optionalString(doc, path, "display_name", addViolation)
	rule.ComponentPreference = optionalString(doc, path, "component_preference", addViolation)
	rule.Unit = optionalString(doc, path, "unit", addViolation)
	rule.FilterValue = optionalString(doc, path, "filter_value", addViolation)
	rule.Reason = optionalString(doc, path, "reason", addViolation)

	return rule
}

func requireString(doc map[string]interface{}, key string, addViolation func(string, string, ...interface{})) string {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		addViolation(key, "required string field is missing")
		return ""
	}
	return s
}

func optionalString(doc map[string]interface{}, path, key string, addViolation func(string, string, ...interface{})) string {
	v, present := doc[key]
	if !present {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		addViolation(path+"."+key, "must be a string, got %T", v)
		return ""
	}
	return s
}
