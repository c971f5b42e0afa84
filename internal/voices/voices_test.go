package voices

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/voiceai/client/internal/api"
)

type fakeSynth struct {
	voices []api.Voice
	err    error
}

func (f *fakeSynth) Voices(ctx context.Context) ([]api.Voice, error) {
	return f.voices, f.err
}

type fakeCloning struct {
	voices []api.ClonedVoice
	err    error
	calls  int
}

func (f *fakeCloning) MyClonedVoices(ctx context.Context) ([]api.ClonedVoice, error) {
	f.calls++
	return f.voices, f.err
}

func TestRef_Param(t *testing.T) {
	assert.Equal(t, "af_heart", Ref{Kind: KindBuiltin, ID: "af_heart"}.Param())
	assert.Equal(t, "cloned-abc", Ref{Kind: KindCloned, ID: "abc"}.Param())
}

func TestParseRef(t *testing.T) {
	assert.Equal(t, Ref{Kind: KindBuiltin, ID: "af_heart"}, ParseRef("af_heart"))
	assert.Equal(t, Ref{Kind: KindCloned, ID: "abc"}, ParseRef("cloned-abc"))
}

func TestRef_RoundTrip(t *testing.T) {
	for _, ref := range []Ref{
		{Kind: KindBuiltin, ID: "af_heart"},
		{Kind: KindCloned, ID: "abc123"},
	} {
		assert.Equal(t, ref, ParseRef(ref.Param()))
	}
}

func TestLoad_Success(t *testing.T) {
	synth := &fakeSynth{voices: []api.Voice{
		{ID: "af_heart", Name: "Heart", Recommended: true},
		{ID: "am_adam", Name: "Adam"},
	}}
	catalog := NewCatalog(synth, &fakeCloning{})

	entries, advisory := catalog.Load(context.Background(), false)

	require.Len(t, entries, 2)
	assert.Empty(t, advisory)
	assert.Equal(t, KindBuiltin, entries[0].Ref.Kind)
	assert.True(t, entries[0].Recommended)
}

func TestLoad_FailureFallsBackToFixedTrio(t *testing.T) {
	synth := &fakeSynth{err: errors.New("connection refused")}
	catalog := NewCatalog(synth, &fakeCloning{})

	entries, advisory := catalog.Load(context.Background(), false)

	require.Len(t, entries, 3)
	assert.NotEmpty(t, advisory)
	assert.Equal(t, "af_heart", entries[0].Ref.ID)
	assert.Equal(t, "af_bella", entries[1].Ref.ID)
	assert.Equal(t, "af_sarah", entries[2].Ref.ID)
}

func TestLoad_PremiumAppendsReadyClonedVoices(t *testing.T) {
	synth := &fakeSynth{voices: []api.Voice{{ID: "af_heart", Name: "Heart"}}}
	cloning := &fakeCloning{voices: []api.ClonedVoice{
		{ID: "abc", Name: "My voice", Status: "ready"},
		{ID: "def", Name: "Processing", Status: "pending"},
	}}
	catalog := NewCatalog(synth, cloning)

	entries, _ := catalog.Load(context.Background(), true)

	require.Len(t, entries, 2)
	assert.Equal(t, Ref{Kind: KindCloned, ID: "abc"}, entries[1].Ref)
}

func TestLoad_NonPremiumSkipsClonedFetch(t *testing.T) {
	synth := &fakeSynth{voices: []api.Voice{{ID: "af_heart"}}}
	cloning := &fakeCloning{}
	catalog := NewCatalog(synth, cloning)

	catalog.Load(context.Background(), false)

	assert.Equal(t, 0, cloning.calls)
}

func TestLoad_ClonedFetchFailureIsSilent(t *testing.T) {
	synth := &fakeSynth{voices: []api.Voice{{ID: "af_heart"}}}
	cloning := &fakeCloning{err: errors.New("boom")}
	catalog := NewCatalog(synth, cloning)

	entries, advisory := catalog.Load(context.Background(), true)

	assert.Len(t, entries, 1)
	assert.Empty(t, advisory)
}
