package normative

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/normgate/internal/apperr"
)

// AnalysisResult is the typed form of a validated extraction payload.
type AnalysisResult struct {
	InputStatement string
	Propositions   []Proposition
}

// Mapper converts validated JSON payloads into domain values. Every
// enumerated field must resolve; nothing is defaulted.
type Mapper struct{}

// MapPropositions returns the propositions of an extraction payload, in
// payload order.
func (m Mapper) MapPropositions(payload string) ([]Proposition, error) {
	res, err := m.MapAnalysis(payload)
	if err != nil {
		return nil, err
	}
	return res.Propositions, nil
}

// MapAnalysis decodes {input_statement, implied_propositions: [...]}.
func (m Mapper) MapAnalysis(payload string) (*AnalysisResult, error) {
	const op = "normative.MapAnalysis"
	doc, err := decodeObject(op, payload)
	if err != nil {
		return nil, err
	}
	statement, err := requireString(op, doc, "input_statement", "input_statement")
	if err != nil {
		return nil, err
	}
	items, err := requireArray(op, doc, "implied_propositions", "implied_propositions")
	if err != nil {
		return nil, err
	}
	props, err := mapPropositionList(op, items, "implied_propositions")
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{InputStatement: statement, Propositions: props}, nil
}

// MapEndeavours decodes an endeavour document:
//
//	{"endeavours": [{"name", "description", "comprehensiveness"?,
//	  "normative_propositions": [...]}]}
//
// An endeavour without a comprehensiveness key gets def.
func (m Mapper) MapEndeavours(payload []byte, def Comprehensiveness) ([]Endeavour, error) {
	const op = "normative.MapEndeavours"
	doc, err := decodeObject(op, string(payload))
	if err != nil {
		return nil, err
	}
	items, err := requireArray(op, doc, "endeavours", "endeavours")
	if err != nil {
		return nil, err
	}

	out := make([]Endeavour, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("endeavours[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apperr.Mapping(op, path, errors.New("must be an object"))
		}
		name, err := requireString(op, obj, "name", path+".name")
		if err != nil {
			return nil, err
		}
		desc, err := requireString(op, obj, "description", path+".description")
		if err != nil {
			return nil, err
		}
		comp := def
		if _, present := obj["comprehensiveness"]; present {
			raw, err := requireString(op, obj, "comprehensiveness", path+".comprehensiveness")
			if err != nil {
				return nil, err
			}
			if comp, err = ParseComprehensiveness(raw); err != nil {
				return nil, apperr.Mapping(op, path+".comprehensiveness", err)
			}
		}
		list, err := requireArray(op, obj, "normative_propositions", path+".normative_propositions")
		if err != nil {
			return nil, err
		}
		props, err := mapPropositionList(op, list, path+".normative_propositions")
		if err != nil {
			return nil, err
		}
		e := NewEndeavour(name, desc, comp, props)
		if id, ok := obj["uuid"].(string); ok && id != "" {
			e.ID = id
		}
		out = append(out, e)
	}
	return out, nil
}

func mapPropositionList(op string, items []any, path string) ([]Proposition, error) {
	props := make([]Proposition, 0, len(items))
	for i, item := range items {
		p, err := mapProposition(op, item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

func mapProposition(op string, item any, path string) (Proposition, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Proposition{}, apperr.Mapping(op, path, errors.New("must be an object"))
	}

	fields := make(map[string]string, 5)
	for _, key := range []string{"proposition_value", "operator", "level", "modality", "modal_subscript"} {
		v, err := requireString(op, obj, key, path+"."+key)
		if err != nil {
			return Proposition{}, err
		}
		fields[key] = v
	}

	operator, err := ParseOperator(fields["operator"])
	if err != nil {
		return Proposition{}, apperr.Mapping(op, path+".operator", err)
	}
	level, err := ParseLevel(fields["level"])
	if err != nil {
		return Proposition{}, apperr.Mapping(op, path+".level", err)
	}
	modality, err := ParseModality(fields["modality"])
	if err != nil {
		return Proposition{}, apperr.Mapping(op, path+".modality", err)
	}
	sub, err := ParseModalSubscript(fields["modal_subscript"])
	if err != nil {
		return Proposition{}, apperr.Mapping(op, path+".modal_subscript", err)
	}

	p := NewProposition(fields["proposition_value"], operator, level, modality, sub)
	if id, ok := obj["uuid"].(string); ok {
		if _, err := uuid.Parse(id); err == nil {
			p.ID = id
		}
	}
	return p, nil
}

func decodeObject(op, payload string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, apperr.New(apperr.ErrMapping, op, fmt.Errorf("payload is not a JSON object: %w", err))
	}
	if doc == nil {
		return nil, apperr.New(apperr.ErrMapping, op, errors.New("payload is null"))
	}
	return doc, nil
}

func requireString(op string, obj map[string]any, key, path string) (string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", apperr.Mapping(op, path, errors.New("missing required key"))
	}
	s, ok := raw.(string)
	if !ok {
		return "", apperr.Mapping(op, path, fmt.Errorf("must be a string, got %T", raw))
	}
	return s, nil
}

func requireArray(op string, obj map[string]any, key, path string) ([]any, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, apperr.Mapping(op, path, errors.New("missing required key"))
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, apperr.Mapping(op, path, fmt.Errorf("must be an array, got %T", raw))
	}
	return items, nil
}
