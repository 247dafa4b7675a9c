package summary

import "errors"

// errors returned by the pipeline, check with errors.Is
var (
	ErrPreferencesMissing = errors.New("user has no preferences")
	ErrNoCandidates       = errors.New("no content matches user preferences")
	ErrVectorSearch       = errors.New("vector search failed")
	ErrGeneration         = errors.New("summary generation failed")
	ErrEmptyGeneration    = errors.New("llm returned empty summary")
	ErrPersistence        = errors.New("summary persistence failed")
	ErrInProgress         = errors.New("summary generation already in progress")
	ErrRecentSummary      = errors.New("recent summary exists")
)

// State is a step of a single summary generation
type State string

// pipeline states, the last four are failure terminals and StateSkipped marks a request not attempted
const (
	StateStart               State = "start"
	StatePreferencesLoaded   State = "preferences_loaded"
	StateCandidatesRetrieved State = "candidates_retrieved"
	StatePromptBuilt         State = "prompt_built"
	StateLLMCompleted        State = "llm_completed"
	StatePersisted           State = "persisted"
	StateSkipped             State = "skipped"
	StateNoPreferences       State = "no_preferences"
	StateNoCandidates        State = "no_candidates"
	StateGenerationFailed    State = "generation_failed"
	StatePersistenceFailed   State = "persistence_failed"
)
