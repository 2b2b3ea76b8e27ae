package config

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule validates one node of a parsed YAML document. field is the dotted
// path of node from the document root and prefixes every violation.
type Rule interface {
	Validate(field string, node *yaml.Node) ValidationErrors
}

// String accepts a YAML string scalar.
type String struct{}

// Validate implements Rule
func (String) Validate(field string, node *yaml.Node) ValidationErrors {
	node = resolveAlias(node)
	if !isString(node) {
		return violation(field, "expected string, got %s", describe(node))
	}
	return nil
}

// Boolean accepts a YAML boolean scalar.
type Boolean struct{}

// Validate implements Rule
func (Boolean) Validate(field string, node *yaml.Node) ValidationErrors {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
		return violation(field, "expected boolean, got %s", describe(node))
	}
	if !boolSpellings[node.Value] {
		return violation(field, "expected boolean, got %q", node.Value)
	}
	return nil
}

// boolSpellings are the YAML 1.2 core schema booleans. An explicit !!bool
// tag on anything else does not decode.
var boolSpellings = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": true, "False": true, "FALSE": true,
}

// Enum accepts a string scalar equal to one of Values.
type Enum struct {
	Values []string
}

// Validate implements Rule
func (r Enum) Validate(field string, node *yaml.Node) ValidationErrors {
	node = resolveAlias(node)
	if isString(node) {
		for _, v := range r.Values {
			if node.Value == v {
				return nil
			}
		}
	}
	return violation(field, "must be one of %s", quoteAll(r.Values))
}

// Array accepts a YAML sequence.
type Array struct {
	Items       Rule
	MinItems    int
	UniqueItems bool
}

// Validate implements Rule
func (r Array) Validate(field string, node *yaml.Node) ValidationErrors {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.SequenceNode {
		return violation(field, "expected sequence, got %s", describe(node))
	}

	var errs ValidationErrors
	if len(node.Content) < r.MinItems {
		errs = append(errs, violation(field, "must contain at least %d item(s)", r.MinItems)...)
	}

	seen := make(map[string]int)
	for i, item := range node.Content {
		if r.Items != nil {
			errs = append(errs, r.Items.Validate(indexField(field, i), item)...)
		}
		if !r.UniqueItems {
			continue
		}
		item = resolveAlias(item)
		if item == nil || item.Kind != yaml.ScalarNode {
			continue
		}
		key := item.ShortTag() + "\x00" + item.Value
		if first, dup := seen[key]; dup {
			errs = append(errs, violation(indexField(field, i), "duplicate of item %d (%q)", first, item.Value)...)
			continue
		}
		seen[key] = i
	}
	return errs
}

// PatternProperty applies Rule to every mapping key matching Pattern.
type PatternProperty struct {
	Pattern *regexp.Regexp
	Rule    Rule
}

// Object accepts a YAML mapping with string keys.
//
// A key is checked against its entry in Properties and against every
// PatternProperties entry it matches. A key matched by neither is
// rejected unless AdditionalProperties is set. Keys pulled in through a
// << merge are checked the same way once explicit keys have been seen, so
// explicit keys win.
type Object struct {
	Properties           map[string]Rule
	PatternProperties    []PatternProperty
	Required             []string
	AdditionalProperties bool
}

// Validate implements Rule
func (r Object) Validate(field string, node *yaml.Node) ValidationErrors {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return violation(field, "expected mapping, got %s", describe(node))
	}

	var errs ValidationErrors
	present := make(map[string]bool)
	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		value := node.Content[i+1]

		if isMerge(keyNode) {
			merges = append(merges, value)
			continue
		}
		if !isString(keyNode) {
			errs = append(errs, violation(field, "key %s must be a string, got %s", keyLabel(keyNode), describe(keyNode))...)
			continue
		}
		key := keyNode.Value
		child := joinField(field, key)
		if present[key] {
			errs = append(errs, violation(child, "duplicate key")...)
			continue
		}
		present[key] = true
		errs = append(errs, r.validateKey(child, key, value)...)
	}

	for _, merge := range merges {
		entries, merr := mergeEntries(field, merge, map[*yaml.Node]bool{node: true})
		errs = append(errs, merr...)
		for _, e := range entries {
			if present[e.key] {
				continue
			}
			present[e.key] = true
			errs = append(errs, r.validateKey(joinField(field, e.key), e.key, e.value)...)
		}
	}

	for _, req := range r.Required {
		if !present[req] {
			errs = append(errs, violation(joinField(field, req), "is required")...)
		}
	}
	return errs
}

func (r Object) validateKey(field, key string, value *yaml.Node) ValidationErrors {
	var errs ValidationErrors
	matched := false
	if rule, ok := r.Properties[key]; ok {
		matched = true
		errs = append(errs, rule.Validate(field, value)...)
	}
	for _, pp := range r.PatternProperties {
		if pp.Pattern.MatchString(key) {
			matched = true
			errs = append(errs, pp.Rule.Validate(field, value)...)
		}
	}
	if !matched && !r.AdditionalProperties {
		errs = append(errs, violation(field, "unexpected field")...)
	}
	return errs
}

type mapEntry struct {
	key   string
	value *yaml.Node
}

// mergeEntries flattens the value of a << key into the entries it
// contributes. The value is a mapping or a sequence of mappings; earlier
// mappings win over later ones and each mapping's own keys win over its
// nested merges. seen guards against a mapping that merges itself.
func mergeEntries(field string, merge *yaml.Node, seen map[*yaml.Node]bool) ([]mapEntry, ValidationErrors) {
	mergeField := joinField(field, "<<")
	merge = resolveAlias(merge)

	var sources []*yaml.Node
	switch {
	case merge != nil && merge.Kind == yaml.MappingNode:
		sources = []*yaml.Node{merge}
	case merge != nil && merge.Kind == yaml.SequenceNode:
		for i, item := range merge.Content {
			item = resolveAlias(item)
			if item == nil || item.Kind != yaml.MappingNode {
				return nil, violation(indexField(mergeField, i), "expected mapping, got %s", describe(item))
			}
			sources = append(sources, item)
		}
	default:
		return nil, violation(mergeField, "expected mapping or sequence of mappings, got %s", describe(merge))
	}

	var entries []mapEntry
	var errs ValidationErrors
	for _, src := range sources {
		if seen[src] {
			errs = append(errs, violation(mergeField, "mapping merges itself")...)
			continue
		}
		seen[src] = true

		var nested []*yaml.Node
		for i := 0; i+1 < len(src.Content); i += 2 {
			keyNode := resolveAlias(src.Content[i])
			if isMerge(keyNode) {
				nested = append(nested, src.Content[i+1])
				continue
			}
			if !isString(keyNode) {
				errs = append(errs, violation(mergeField, "key %s must be a string, got %s", keyLabel(keyNode), describe(keyNode))...)
				continue
			}
			entries = append(entries, mapEntry{key: keyNode.Value, value: src.Content[i+1]})
		}
		for _, n := range nested {
			more, merr := mergeEntries(field, n, seen)
			entries = append(entries, more...)
			errs = append(errs, merr...)
		}
		delete(seen, src)
	}
	return entries, errs
}

var (
	namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	wordPattern = regexp.MustCompile(`^\w+$`)
)

func uniqueStrings() Rule {
	return Array{Items: String{}, MinItems: 1, UniqueItems: true}
}

// Schema is the fixed shape of meta-maas.yaml.
var Schema Rule = Object{
	Properties: map[string]Rule{
		"regions": Object{
			PatternProperties: []PatternProperty{{
				Pattern: namePattern,
				Rule: Object{
					Properties: map[string]Rule{
						"url":    String{},
						"apikey": String{},
					},
					Required: []string{"url", "apikey"},
				},
			}},
		},
		"users": Object{
			PatternProperties: []PatternProperty{{
				Pattern: wordPattern,
				Rule: Object{
					Properties: map[string]Rule{
						"email":    String{},
						"password": String{},
						"is_admin": Boolean{},
					},
					Required: []string{"email", "password"},
				},
			}},
		},
		"images": Object{
			Properties: map[string]Rule{
				"source": Object{
					Properties: map[string]Rule{
						"url":              String{},
						"keyring_filename": String{},
						"selections": Object{
							PatternProperties: []PatternProperty{{
								Pattern: wordPattern,
								Rule: Object{
									Properties: map[string]Rule{
										"releases": uniqueStrings(),
										"arches":   uniqueStrings(),
									},
									Required: []string{"releases", "arches"},
								},
							}},
						},
					},
					Required: []string{"url", "keyring_filename", "selections"},
				},
				"custom": Object{
					PatternProperties: []PatternProperty{{
						Pattern: namePattern,
						Rule: Object{
							Properties: map[string]Rule{
								"path":         String{},
								"architecture": String{},
								"filetype":     Enum{Values: []string{FiletypeTGZ, FiletypeDDTGZ}},
							},
							Required: []string{"path", "architecture"},
						},
					}},
				},
			},
		},
	},
	Required: []string{"regions"},
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isMerge(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

func isString(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

// describe names the YAML type of node for messages
func describe(node *yaml.Node) string {
	if node == nil || node.Kind == 0 {
		return "null"
	}
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.DocumentNode:
		return "document"
	}
	switch tag := node.ShortTag(); tag {
	case "!!str":
		return "string"
	case "!!int":
		return "integer"
	case "!!float":
		return "number"
	case "!!bool":
		return "boolean"
	case "!!null":
		return "null"
	default:
		return tag
	}
}

func keyLabel(node *yaml.Node) string {
	if node != nil && node.Kind == yaml.ScalarNode {
		return `"` + node.Value + `"`
	}
	return describe(node)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, ", ")
}
