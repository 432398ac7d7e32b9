package synth

//go:generate go tool stringer -type=Mode -trimprefix=Mode -output=mode_string.go

// Mode selects how far the pipeline runs for each record.
type Mode int

const (
	// ModeCheck classifies and checks names only.
	ModeCheck Mode = iota
	// ModePlan also builds the builder model.
	ModePlan
	// ModeGenerate also renders the Go source.
	ModeGenerate
)
