package stage

// Name identifies a pipeline stage for logging and error reporting.
type Name string

const (
	Validating    Name = "validating"
	Normalizing   Name = "normalizing"
	Concatenating Name = "concatenating"
	Composing     Name = "composing"
	CleaningUp    Name = "cleaning-up"
)

func (n Name) String() string { return string(n) }
