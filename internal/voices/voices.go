// Package voices loads the selectable voice catalog: built-in voices
// from the synthesis service plus, for premium identities, the user's
// cloned voices.
package voices

import (
	"context"
	"strings"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/logger"
)

// Kind discriminates which backend synthesizes a voice.
type Kind int

const (
	KindBuiltin Kind = iota
	KindCloned
)

// clonedPrefix is the wire convention the services and history speak;
// inside the client a Ref carries the kind explicitly.
const clonedPrefix = "cloned-"

// Ref identifies a selectable voice and the backend that owns it.
type Ref struct {
	Kind Kind
	ID   string
}

// Param renders the wire voice id: the raw id for built-ins, the
// prefixed form for cloned voices.
func (r Ref) Param() string {
	if r.Kind == KindCloned {
		return clonedPrefix + r.ID
	}
	return r.ID
}

// ParseRef recovers a Ref from a wire or history voice id.
func ParseRef(id string) Ref {
	if rest, ok := strings.CutPrefix(id, clonedPrefix); ok {
		return Ref{Kind: KindCloned, ID: rest}
	}
	return Ref{Kind: KindBuiltin, ID: id}
}

// Entry is one selectable catalog row.
type Entry struct {
	Ref         Ref
	Name        string
	Description string
	Language    string
	Gender      string
	Recommended bool
}

// VoiceLister is the synthesis-service slice the catalog depends on.
type VoiceLister interface {
	Voices(ctx context.Context) ([]api.Voice, error)
}

// ClonedLister is the cloning-service slice the catalog depends on.
type ClonedLister interface {
	MyClonedVoices(ctx context.Context) ([]api.ClonedVoice, error)
}

// Catalog fetches and merges the selectable voice set.
type Catalog struct {
	synth   VoiceLister
	cloning ClonedLister
}

func NewCatalog(synth VoiceLister, cloning ClonedLister) *Catalog {
	return &Catalog{synth: synth, cloning: cloning}
}

// Load fetches the built-in catalog, falling back to the fixed trio on
// any failure; advisory is a non-fatal message for the fallback case.
// For premium identities the user's ready cloned voices are appended;
// that fetch failing is silent (the cloned section stays empty).
func (c *Catalog) Load(ctx context.Context, premium bool) (entries []Entry, advisory string) {
	builtin, err := c.synth.Voices(ctx)
	if err != nil {
		logger.ErrorErr(err, "voice catalog fetch failed, using fallback")
		entries = Fallback()
		advisory = "Voice service not reachable, using the default voices"
	} else {
		entries = make([]Entry, 0, len(builtin))
		for _, v := range builtin {
			entries = append(entries, Entry{
				Ref:         Ref{Kind: KindBuiltin, ID: v.ID},
				Name:        v.Name,
				Description: v.Description,
				Language:    v.Language,
				Gender:      v.Gender,
				Recommended: v.Recommended,
			})
		}
	}

	if !premium {
		return entries, advisory
	}

	cloned, err := c.cloning.MyClonedVoices(ctx)
	if err != nil {
		logger.ErrorErr(err, "cloned voices fetch failed")
		return entries, advisory
	}

	for _, v := range cloned {
		if v.Status != "ready" {
			continue
		}
		entries = append(entries, Entry{
			Ref:         Ref{Kind: KindCloned, ID: v.ID},
			Name:        v.Name,
			Description: v.Description,
		})
	}

	return entries, advisory
}

// Fallback is the fixed built-in catalog used when the synthesis
// service cannot be reached.
func Fallback() []Entry {
	return []Entry{
		{
			Ref:         Ref{Kind: KindBuiltin, ID: "af_heart"},
			Name:        "Heart",
			Description: "Warm, expressive female voice",
			Language:    "en-US",
			Gender:      "female",
			Recommended: true,
		},
		{
			Ref:         Ref{Kind: KindBuiltin, ID: "af_bella"},
			Name:        "Bella",
			Description: "Clear, articulate female voice",
			Language:    "en-US",
			Gender:      "female",
		},
		{
			Ref:         Ref{Kind: KindBuiltin, ID: "af_sarah"},
			Name:        "Sarah",
			Description: "Soft, natural female voice",
			Language:    "en-US",
			Gender:      "female",
		},
	}
}
