package oauth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	fitnessapi "google.golang.org/api/fitness/v1"

	"github.com/sleepdoctor/sleepdoc/internal/config"
)

// Scopes is the fixed permission set every bridge call requires.
var Scopes = []string{
	fitnessapi.FitnessActivityReadScope,
	fitnessapi.FitnessBodyReadScope,
	fitnessapi.FitnessHeartRateReadScope,
	fitnessapi.FitnessSleepReadScope,
	fitnessapi.FitnessSleepWriteScope,
}

// NewConfig builds the client config. RedirectURL is filled in per consent prompt
// once the loopback listener has a port.
func NewConfig(g config.Google) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}
}
