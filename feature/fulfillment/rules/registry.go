package rules

import "fmt"

// Registry maps platforms to their matching rules.
type Registry struct {
	order []Platform
	rules map[Platform]Rule
}

// NewRegistry builds a registry from rules. Later rules replace earlier ones
// for the same platform.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{rules: make(map[Platform]Rule, len(rules))}
	for _, rule := range rules {
		if _, exists := r.rules[rule.Platform]; !exists {
			r.order = append(r.order, rule.Platform)
		}
		r.rules[rule.Platform] = rule
	}
	return r
}

// Default returns the registry of every supported platform.
func Default() *Registry {
	return NewRegistry(
		storefrontRule(),
		codeRule(Shopee, 0),
		codeRule(Momo, 18),
		codeRule(Yahoo, 15),
	)
}

// Rule returns the matching rule of a platform.
func (r *Registry) Rule(p Platform) (Rule, error) {
	rule, ok := r.rules[p]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
	return rule, nil
}

// Platforms returns the registered platforms in registration order.
func (r *Registry) Platforms() []Platform {
	out := make([]Platform, len(r.order))
	copy(out, r.order)
	return out
}
