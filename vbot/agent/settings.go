package agent

import "fmt"

// Settings are the per-tenant agent parameters. Zero values are filled
// by WithDefaults so a tenant without stored settings still works.
type Settings struct {
	AgentName      string
	CompanyName    string
	DeliveryPrice  float64
	WelcomeMessage string
	Active         bool
}

// WithDefaults fills unset fields with the stock persona.
func (s Settings) WithDefaults() Settings {
	if s.AgentName == "" {
		s.AgentName = "Max"
	}
	if s.CompanyName == "" {
		s.CompanyName = "nossa loja"
	}
	return s
}

// Welcome returns the greeting for a first contact.
func (s Settings) Welcome() string {
	s = s.WithDefaults()
	if s.WelcomeMessage != "" {
		return s.WelcomeMessage
	}
	return fmt.Sprintf("Ola! Sou o %s, assistente virtual da %s. Como posso ajudar?", s.AgentName, s.CompanyName)
}
