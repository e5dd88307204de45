package profiles

import (
	"context"
	"errors"
	"strings"
)

// ErrProfileUnavailable is returned when no profile is bound to the request.
var ErrProfileUnavailable = errors.New("profiles: profile unavailable")

// Profile is the public card data embedded by profile blocks.
type Profile struct {
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Headline    string       `json:"headline,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Photo       string       `json:"photo,omitempty"`
	Banner      string       `json:"banner,omitempty"`
	Hashtag     string       `json:"hashtag,omitempty"`
	SocialLinks []SocialLink `json:"socialLinks,omitempty"`
}

// SocialLink is a labelled outbound link.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Provider returns the profile the current render is scoped to.
type Provider interface {
	Profile(ctx context.Context) (*Profile, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context) (*Profile, error)

func (fn ProviderFunc) Profile(ctx context.Context) (*Profile, error) {
	if fn == nil {
		return nil, ErrProfileUnavailable
	}
	return fn(ctx)
}

// Static always returns a copy of profile.
func Static(profile *Profile) Provider {
	return ProviderFunc(func(context.Context) (*Profile, error) {
		if profile == nil {
			return nil, ErrProfileUnavailable
		}
		return profile.Clone(), nil
	})
}

// None is a provider with no profile bound.
func None() Provider {
	return ProviderFunc(func(context.Context) (*Profile, error) {
		return nil, ErrProfileUnavailable
	})
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	if p.SocialLinks != nil {
		out.SocialLinks = append([]SocialLink(nil), p.SocialLinks...)
	}
	return &out
}

// DisplayName falls back to the slug when the profile has no name.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return strings.TrimSpace(p.Slug)
}
