// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalized

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

// Field strategies accepted in a policy document.
const (
	StrategyReplace = "replace"
	StrategyMerge   = "merge"
)

//go:embed policies.yaml
var embeddedPolicies []byte

// policyDocument is the YAML shape of a policy table.
type policyDocument struct {
	Types map[string]typeDocument `yaml:"types"`
}

type typeDocument struct {
	KeyFields []string          `yaml:"keyFields"`
	Merge     bool              `yaml:"merge"`
	Fields    map[string]string `yaml:"fields"`
}

// LoadPolicies parses a YAML policy document.
//
// Unknown document keys and unknown field strategies are rejected.
func LoadPolicies(reader io.Reader) (Policies, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var document policyDocument
	if err := decoder.Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return Policies{}, nil
		}
		return nil, fmt.Errorf("policy_decode_failed: %w", err)
	}

	policies := make(Policies, len(document.Types))
	for typename, declared := range document.Types {
		policy := TypePolicy{
			KeyFields: declared.KeyFields,
			Merge:     declared.Merge,
		}

		if len(declared.Fields) > 0 {
			policy.Fields = make(map[string]FieldPolicy, len(declared.Fields))
		}
		for field, strategy := range declared.Fields {
			merge, err := strategyFunc(strategy)
			if err != nil {
				return nil, fmt.Errorf("policy %s.%s: %w", typename, field, err)
			}
			policy.Fields[field] = FieldPolicy{Merge: merge}
		}

		policies[typename] = policy
	}
	return policies, nil
}

func strategyFunc(strategy string) (MergeFunc, error) {
	switch strategy {
	case StrategyReplace:
		return ReplaceList, nil
	case StrategyMerge:
		return DeepMerge, nil
	}
	return nil, fmt.Errorf("unknown merge strategy %q", strategy)
}

var (
	defaultPolicies     Policies
	defaultPoliciesErr  error
	defaultPoliciesOnce sync.Once
)

// DefaultPolicies returns the policy table shipped with the binary.
//
// The embedded document is parsed once. A broken document is a build defect,
// so it panics.
func DefaultPolicies() Policies {
	defaultPoliciesOnce.Do(func() {
		defaultPolicies, defaultPoliciesErr = LoadPolicies(bytes.NewReader(embeddedPolicies))
	})
	if defaultPoliciesErr != nil {
		panic(defaultPoliciesErr)
	}
	return defaultPolicies
}
