package valueobjects

// Provider identifies the billing system a notification originates from.
type Provider string

const (
	ProviderAppleStore Provider = "apple_store"
	ProviderGooglePlay Provider = "google_play"
	ProviderStripe     Provider = "stripe"
)

func (p Provider) String() string {
	return string(p)
}

func (p Provider) IsValid() bool {
	return ValidProviders[p]
}

var ValidProviders = map[Provider]bool{
	ProviderAppleStore: true,
	ProviderGooglePlay: true,
	ProviderStripe:     true,
}
