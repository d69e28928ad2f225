package config

// EmailConfig controls outbound email.
type EmailConfig struct {
	Provider    string // log | sendgrid
	APIKey      string
	FromAddress string
	FromName    string
}

func loadEmail() EmailConfig {
	return EmailConfig{
		Provider:    envOrDefault(envEmailProvider, defaultEmailProvider),
		APIKey:      envOrDefault(envSendgridKey, ""),
		FromAddress: envOrDefault(envEmailFrom, defaultEmailFrom),
		FromName:    envOrDefault(envEmailFromName, defaultEmailFromName),
	}
}
