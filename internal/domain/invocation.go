package domain

const (
	FlagProgress = "--progress"
	FlagFormat   = "-f"
	FlagOutput   = "-o"

	// FormatBest is the only format selector ever passed
	FormatBest = "best"
)

// Arg is a single downloader flag with an optional value
type Arg struct {
	Flag     string
	Value    string
	HasValue bool
}

// NewArg creates a bare flag
func NewArg(flag string) Arg {
	return Arg{Flag: flag}
}

// NewArgWithValue creates a flag followed by a value
func NewArgWithValue(flag, value string) Arg {
	return Arg{Flag: flag, Value: value, HasValue: true}
}

// InvocationArgs is the ordered flag list handed to the downloader
type InvocationArgs []Arg

// Strings flattens the flags into argv form
func (a InvocationArgs) Strings() []string {
	out := make([]string, 0, len(a)*2)
	for _, arg := range a {
		out = append(out, arg.Flag)
		if arg.HasValue {
			out = append(out, arg.Value)
		}
	}
	return out
}

// Invocation is everything a Downloader needs to run once
type Invocation struct {
	RunID     string // Correlates process log sections with history, may be empty
	Directory string
	Args      InvocationArgs
	URL       string
}

// Argv returns the flags followed by the URL
func (i Invocation) Argv() []string {
	return append(i.Args.Strings(), i.URL)
}

// BuildInvocation maps a Request to the downloader invocation.
// The flag order is fixed: progress, format, output.
func BuildInvocation(req *Request) Invocation {
	return Invocation{
		Directory: req.Directory(),
		Args: InvocationArgs{
			NewArg(FlagProgress),
			NewArgWithValue(FlagFormat, FormatBest),
			NewArgWithValue(FlagOutput, req.FileName()),
		},
		URL: req.URL(),
	}
}
