package valueobjects

// Environment distinguishes production purchases from sandbox/test purchases.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentSandbox    Environment = "sandbox"
)

func (e Environment) String() string {
	return string(e)
}

func (e Environment) IsValid() bool {
	return e == EnvironmentProduction || e == EnvironmentSandbox
}
