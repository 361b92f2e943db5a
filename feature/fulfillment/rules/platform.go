package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlatform is returned for a platform outside the supported set.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is a sales channel. Its value is the platform tag stored in the
// warehouse and echoed in reports.
type Platform string

const (
	// Storefront is the brand's own web shop.
	Storefront Platform = "品牌官網"
	// Shopee is marketplace A: full order codes.
	Shopee Platform = "SHOPEE"
	// Momo is marketplace B: order codes truncated to 18 characters.
	Momo Platform = "MOMO"
	// Yahoo is marketplace C: order codes truncated to 15 characters.
	Yahoo Platform = "YAHOO"
)

// All returns every supported platform in report order.
func All() []Platform {
	return []Platform{Storefront, Shopee, Momo, Yahoo}
}

var aliases = map[string]Platform{
	"storefront":    Storefront,
	"brand":         Storefront,
	"shopee":        Shopee,
	"marketplace-a": Shopee,
	"momo":          Momo,
	"marketplace-b": Momo,
	"yahoo":         Yahoo,
	"marketplace-c": Yahoo,
}

// Parse resolves a platform tag or one of its English aliases.
func Parse(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	for _, p := range All() {
		if string(p) == s {
			return p, nil
		}
	}
	if p, ok := aliases[strings.ToLower(s)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// ParseList resolves a list of platforms, keeping order and dropping duplicates.
func ParseList(values []string) ([]Platform, error) {
	out := make([]Platform, 0, len(values))
	seen := make(map[Platform]bool, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		p, err := Parse(v)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
